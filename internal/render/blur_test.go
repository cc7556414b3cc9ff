package render

import (
	"image"
	"image/color"
	"testing"
)

func TestBlurSpreadsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 31, 31))
	for y := 13; y <= 17; y++ {
		for x := 13; x <= 17; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 0xff})
		}
	}

	blurRGBA(img, 6)

	if a := img.RGBAAt(15, 15).A; a == 0 || a == 0xff {
		t.Errorf("center alpha = %d, want spread between 0 and 255", a)
	}
	if a := img.RGBAAt(19, 15).A; a == 0 {
		t.Error("pixel just outside the block still zero after blur")
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("far corner alpha = %d, want 0", a)
	}
}

func TestBlurZeroRadiusIsNoOp(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	img.SetRGBA(2, 2, color.RGBA{R: 0x80, A: 0x80})
	before := append([]uint8(nil), img.Pix...)

	blurRGBA(img, 0)
	blurRGBA(img, 1.5) // radius rounds down to zero

	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("blur with sub-pixel radius changed the image")
		}
	}
}

func TestTintAlphaKeepsSilhouette(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	// (1,0) stays transparent.

	tintAlpha(img, color.RGBA{R: 0xff, A: 0xff})

	if p := img.RGBAAt(0, 0); p.R != 0xff || p.G != 0 || p.B != 0 || p.A != 0xff {
		t.Errorf("opaque pixel tinted to %v, want solid red", p)
	}
	if p := img.RGBAAt(1, 0); p != (color.RGBA{}) {
		t.Errorf("transparent pixel became %v", p)
	}
}
