package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// The editor ships the Go faces as its built-in fonts. The font catalog a
// host application may offer is outside the core; FontFamily is carried on
// the layer but every family resolves to the built-in face of the requested
// style.
var (
	fontOnce   sync.Once
	fontErr    error
	regularSrc *text.FontSource
	boldSrc    *text.FontSource
)

func loadFonts() {
	regularSrc, fontErr = text.NewFontSource(goregular.TTF)
	if fontErr != nil {
		fontErr = fmt.Errorf("parse built-in regular face: %w", fontErr)
		return
	}
	boldSrc, fontErr = text.NewFontSource(gobold.TTF)
	if fontErr != nil {
		fontErr = fmt.Errorf("parse built-in bold face: %w", fontErr)
	}
}

// faceFor returns a face of the built-in font at the given size. Bold style
// maps to Go Bold, everything else to Go Regular.
func faceFor(bold bool, size float64) (text.Face, error) {
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}
	if bold {
		return boldSrc.Face(size), nil
	}
	return regularSrc.Face(size), nil
}
