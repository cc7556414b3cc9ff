package export

import (
	"bytes"
	"fmt"
	"time"

	"Thumbcraft/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// A4 landscape printable area in mm, with a 10mm margin.
const (
	pageW   = 297.0
	pageH   = 210.0
	pagePad = 10.0
)

// PDF places the rendered thumbnail on an A4 landscape sheet, scaled to fit
// the printable area while keeping the canvas aspect ratio.
func PDF(sc state.Scene) (data []byte, filename string, err error) {
	raster, _, err := PNG(sc)
	if err != nil {
		return nil, "", err
	}

	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("thumbnail", opts, bytes.NewReader(raster))

	maxW := pageW - 2*pagePad
	maxH := pageH - 2*pagePad
	w := maxW
	h := w * float64(sc.Config.Height) / float64(sc.Config.Width)
	if h > maxH {
		h = maxH
		w = h * float64(sc.Config.Width) / float64(sc.Config.Height)
	}
	x := (pageW - w) / 2
	y := (pageH - h) / 2
	doc.ImageOptions("thumbnail", x, y, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("export pdf: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("thumbnail-%d.pdf", time.Now().UnixMilli()), nil
}
