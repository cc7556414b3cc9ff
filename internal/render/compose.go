// Package render derives pixels from a scene snapshot. Compose is a pure
// projection: background fill, the image group, the text group, and, for the
// editor preview only, grid/safe-zone guides and the selection decoration.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"strings"

	"Thumbcraft/internal/geometry"
	"Thumbcraft/internal/state"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Selection decoration metrics, shared with the canvas widget so hit testing
// and drawing agree.
const (
	HandleSize         = 8.0
	RotateHandleOffset = 28.0
	GridStep           = 50.0
)

// Options selects the edit-time overlays. Export composes with the zero
// Options: guides and selection decoration are preview-only.
type Options struct {
	Guides    bool
	Selection *state.LayerRef
}

// Compose rasterizes the scene at its native width/height. Image layers are
// painted first, text layers second; order inside each group is insertion
// order. The returned image is freshly allocated on every call.
func Compose(sc state.Scene, opts Options) (*image.RGBA, error) {
	cfg := sc.Config
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("compose: invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}

	dc := gg.NewContext(cfg.Width, cfg.Height)
	if err := drawBackground(dc, cfg); err != nil {
		return nil, err
	}
	base := contextRGBA(dc)
	_ = dc.Close()

	for i := range sc.Images {
		drawImageLayer(base, sc.Images[i])
	}
	for i := range sc.Texts {
		if err := drawTextLayer(base, sc.Texts[i]); err != nil {
			return nil, err
		}
	}

	if opts.Guides || opts.Selection != nil {
		gd := gg.NewContextForImage(base)
		if opts.Guides {
			drawGuides(gd, cfg)
		}
		if opts.Selection != nil {
			drawSelection(gd, sc, *opts.Selection)
		}
		base = contextRGBA(gd)
		_ = gd.Close()
	}
	return base, nil
}

func drawBackground(dc *gg.Context, cfg state.CanvasConfig) error {
	w, h := float64(cfg.Width), float64(cfg.Height)
	dc.DrawRectangle(0, 0, w, h)
	if cfg.BackgroundMode == state.BackgroundGradient {
		start, end := geometry.GradientEndpoints(cfg.GradientAngle, w, h)
		dc.SetFillBrush(gg.NewLinearGradientBrush(start.X, start.Y, end.X, end.Y).
			AddColorStop(0, gg.Hex(cfg.GradientStart)).
			AddColorStop(1, gg.Hex(cfg.GradientEnd)))
	} else {
		dc.SetFillBrush(gg.Solid(gg.Hex(cfg.SolidColor)))
	}
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("compose: background fill: %w", err)
	}
	return nil
}

// TextBounds measures the unrotated bounding box of a text layer, anchored at
// its (X, Y).
func TextBounds(l state.TextLayer) (geometry.Box, error) {
	face, err := faceFor(l.FontStyle == state.StyleBold, l.FontSize)
	if err != nil {
		return geometry.Box{}, err
	}
	lines := textLines(l)
	lineH := face.Metrics().LineHeight()
	var w float64
	for _, line := range lines {
		lw, _ := ggtext.Measure(line, face)
		if lw > w {
			w = lw
		}
	}
	return geometry.Box{X: l.X, Y: l.Y, W: w, H: lineH * float64(len(lines))}, nil
}

// ImageBounds returns the unrotated bounding box of an image layer at its
// current scale.
func ImageBounds(l state.ImageLayer) geometry.Box {
	b := l.Src.Bounds()
	return geometry.Box{
		X: l.X,
		Y: l.Y,
		W: float64(b.Dx()) * l.Scale,
		H: float64(b.Dy()) * l.Scale,
	}
}

// LayerBounds resolves a ref against the scene and returns the layer's
// unrotated box plus its rotation. ok is false for a stale ref.
func LayerBounds(sc state.Scene, ref state.LayerRef) (box geometry.Box, rotation float64, ok bool) {
	switch ref.Kind {
	case state.KindText:
		for i := range sc.Texts {
			if sc.Texts[i].ID == ref.ID {
				b, err := TextBounds(sc.Texts[i])
				if err != nil {
					return geometry.Box{}, 0, false
				}
				return b, sc.Texts[i].Rotation, true
			}
		}
	case state.KindImage:
		for i := range sc.Images {
			if sc.Images[i].ID == ref.ID {
				return ImageBounds(sc.Images[i]), sc.Images[i].Rotation, true
			}
		}
	}
	return geometry.Box{}, 0, false
}

// textLines applies the render-time uppercase transform and splits on
// newlines. Stored text is never mutated.
func textLines(l state.TextLayer) []string {
	s := l.Text
	if l.Uppercase {
		s = strings.ToUpper(s)
	}
	return strings.Split(s, "\n")
}

func drawTextLayer(dst *image.RGBA, l state.TextLayer) error {
	face, err := faceFor(l.FontStyle == state.StyleBold, l.FontSize)
	if err != nil {
		return err
	}
	box, err := TextBounds(l)
	if err != nil {
		return err
	}
	center := box.Center()

	if l.Shadow.Opacity > 0 {
		margin := textPad(l) + shadowMargin(l.Shadow.Blur)
		tile, err := renderTextTile(l, face, box, margin, gg.Hex(l.Shadow.Color).Color(), gg.Hex(l.Shadow.Color).Color())
		if err != nil {
			return err
		}
		tintAlpha(tile, gg.Hex(l.Shadow.Color).Color())
		blurRGBA(tile, l.Shadow.Blur)
		compositeTile(dst, tile, center, 1, l.Rotation, l.Shadow.OffsetX, l.Shadow.OffsetY, l.Shadow.Opacity)
	}

	tile, err := renderTextTile(l, face, box, textPad(l), gg.Hex(l.Stroke).Color(), gg.Hex(l.Fill).Color())
	if err != nil {
		return err
	}
	compositeTile(dst, tile, center, 1, l.Rotation, 0, 0, 1)
	return nil
}

// textPad is the tile padding needed so the stroke ring never clips.
func textPad(l state.TextLayer) int {
	return int(math.Ceil(l.StrokeWidth)) + 2
}

// renderTextTile rasterizes the text block, unrotated, into a transparent
// tile with the given symmetric padding. The stroke is approximated by
// repainting the text along a ring of offsets before the fill pass.
func renderTextTile(l state.TextLayer, face ggtext.Face, box geometry.Box, pad int, stroke, fill color.Color) (*image.RGBA, error) {
	tw := int(math.Ceil(box.W)) + 2*pad
	th := int(math.Ceil(box.H)) + 2*pad
	if tw <= 0 || th <= 0 {
		return nil, fmt.Errorf("compose: empty text tile for layer %q", l.Label)
	}
	tc := gg.NewContext(tw, th)
	defer tc.Close()
	tc.SetFont(face)

	metrics := face.Metrics()
	lineH := metrics.LineHeight()
	lines := textLines(l)
	for i, line := range lines {
		lw, _ := ggtext.Measure(line, face)
		x := float64(pad)
		switch l.Align {
		case state.AlignCenter:
			x += (box.W - lw) / 2
		case state.AlignRight:
			x += box.W - lw
		}
		baseline := float64(pad) + metrics.Ascent + float64(i)*lineH

		if l.StrokeWidth > 0 {
			tc.SetColor(stroke)
			for k := 0; k < 16; k++ {
				a := float64(k) * math.Pi / 8
				tc.DrawString(line, x+l.StrokeWidth*math.Cos(a), baseline+l.StrokeWidth*math.Sin(a))
			}
		}
		tc.SetColor(fill)
		tc.DrawString(line, x, baseline)
	}
	return contextRGBA(tc), nil
}

func drawImageLayer(dst *image.RGBA, l state.ImageLayer) {
	if l.Src == nil || l.Scale <= 0 {
		return
	}
	box := ImageBounds(l)
	center := box.Center()

	if l.Shadow.Opacity > 0 {
		sw := int(math.Ceil(box.W))
		sh := int(math.Ceil(box.H))
		m := shadowMargin(l.Shadow.Blur)
		sil := image.NewRGBA(image.Rect(0, 0, sw+2*m, sh+2*m))
		xdraw.BiLinear.Scale(sil, image.Rect(m, m, m+sw, m+sh), l.Src, l.Src.Bounds(), xdraw.Over, nil)
		tintAlpha(sil, gg.Hex(l.Shadow.Color).Color())
		blurRGBA(sil, l.Shadow.Blur)
		compositeTile(dst, sil, center, 1, l.Rotation, l.Shadow.OffsetX, l.Shadow.OffsetY, l.Shadow.Opacity)
	}

	compositeTile(dst, l.Src, center, l.Scale, l.Rotation, 0, 0, l.Opacity)
}

// shadowMargin is the tile padding that keeps three box-blur passes from
// clipping at the silhouette's edge.
func shadowMargin(blur float64) int {
	return int(math.Ceil(blur*1.5)) + 2
}

// compositeTile paints src onto dst so that the source center lands on
// center offset by (dx, dy), scaled uniformly and rotated about its own
// center. alpha < 1 fades the whole tile.
func compositeTile(dst *image.RGBA, src image.Image, center geometry.Point, scale, deg, dx, dy, alpha float64) {
	if alpha <= 0 {
		return
	}
	b := src.Bounds()
	scx := float64(b.Min.X) + float64(b.Dx())/2
	scy := float64(b.Min.Y) + float64(b.Dy())/2

	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	a, bb := scale*cos, -scale*sin
	d, e := scale*sin, scale*cos
	tx := center.X + dx - a*scx - bb*scy
	ty := center.Y + dy - d*scx - e*scy

	var opts *xdraw.Options
	if alpha < 1 {
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)}),
		}
	}
	xdraw.BiLinear.Transform(dst, f64.Aff3{a, bb, tx, d, e, ty}, src, b, xdraw.Over, opts)
}

// tintAlpha keeps only the silhouette of img: every pixel becomes the given
// color premultiplied by the pixel's alpha.
func tintAlpha(img *image.RGBA, c color.Color) {
	cr, cg, cb, ca := c.RGBA()
	r8 := uint32(cr >> 8)
	g8 := uint32(cg >> 8)
	b8 := uint32(cb >> 8)
	a8 := uint32(ca >> 8)
	for i := 0; i < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		img.Pix[i+0] = uint8(r8 * a / 255)
		img.Pix[i+1] = uint8(g8 * a / 255)
		img.Pix[i+2] = uint8(b8 * a / 255)
		img.Pix[i+3] = uint8(a8 * a / 255)
	}
}

func drawGuides(dc *gg.Context, cfg state.CanvasConfig) {
	w, h := float64(cfg.Width), float64(cfg.Height)
	if cfg.ShowGrid {
		dc.SetRGBA(1, 1, 1, 0.15)
		dc.SetLineWidth(1)
		for x := GridStep; x < w; x += GridStep {
			dc.MoveTo(x, 0)
			dc.LineTo(x, h)
		}
		for y := GridStep; y < h; y += GridStep {
			dc.MoveTo(0, y)
			dc.LineTo(w, y)
		}
		if err := dc.Stroke(); err != nil {
			log.Printf("compose: grid stroke: %v", err)
		}
	}
	if cfg.ShowSafeZone {
		inset := 0.05 * math.Min(w, h)
		dc.SetRGBA(1, 0.84, 0, 0.5)
		dc.SetLineWidth(1.5)
		dc.SetDash(8, 6)
		dc.DrawRectangle(inset, inset, w-2*inset, h-2*inset)
		if err := dc.Stroke(); err != nil {
			log.Printf("compose: safe zone stroke: %v", err)
		}
		dc.ClearDash()
	}
}

func drawSelection(dc *gg.Context, sc state.Scene, ref state.LayerRef) {
	box, rotation, ok := LayerBounds(sc, ref)
	if !ok {
		return
	}
	center := box.Center()
	corners := box.Corners()
	for i := range corners {
		corners[i] = geometry.Rotate(corners[i], center, rotation)
	}

	dc.SetHexColor("#4f8ef7")
	dc.SetLineWidth(2)
	dc.MoveTo(corners[0].X, corners[0].Y)
	for _, p := range corners[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	if err := dc.Stroke(); err != nil {
		log.Printf("compose: selection stroke: %v", err)
	}

	for _, p := range corners {
		dc.DrawRectangle(p.X-HandleSize/2, p.Y-HandleSize/2, HandleSize, HandleSize)
		dc.SetRGB(1, 1, 1)
		if err := dc.FillPreserve(); err != nil {
			log.Printf("compose: handle fill: %v", err)
		}
		dc.SetHexColor("#4f8ef7")
		dc.SetLineWidth(1)
		if err := dc.Stroke(); err != nil {
			log.Printf("compose: handle stroke: %v", err)
		}
	}

	// Rotation handle: a knob above the rotated top edge.
	top := geometry.Rotate(geometry.Point{X: center.X, Y: box.Y - RotateHandleOffset}, center, rotation)
	dc.DrawCircle(top.X, top.Y, HandleSize/2)
	dc.SetRGB(1, 1, 1)
	if err := dc.FillPreserve(); err != nil {
		log.Printf("compose: rotate handle fill: %v", err)
	}
	dc.SetHexColor("#4f8ef7")
	if err := dc.Stroke(); err != nil {
		log.Printf("compose: rotate handle stroke: %v", err)
	}
}

// contextRGBA extracts the context's pixels. gg's ToImage already returns a
// fresh *image.RGBA; the fallback copy covers any other backing type.
func contextRGBA(dc *gg.Context) *image.RGBA {
	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	xdraw.Draw(out, out.Rect, img, img.Bounds().Min, xdraw.Src)
	return out
}
