package render

import "image"

// blurRGBA blurs img in place with three separable box passes, which
// approximates a gaussian of sigma ~= blur/2. The image must hold
// premultiplied alpha so all four channels can be averaged directly.
func blurRGBA(img *image.RGBA, blur float64) {
	r := int(blur / 2)
	if r < 1 {
		return
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	for pass := 0; pass < 3; pass++ {
		boxPass(img, tmp, w, h, r, true)
		boxPass(tmp, img, w, h, r, false)
	}
}

// boxPass averages a (2r+1)-wide window along one axis using a running sum.
func boxPass(src, dst *image.RGBA, w, h, r int, horizontal bool) {
	outer, inner := h, w
	if !horizontal {
		outer, inner = w, h
	}
	at := func(i, j int) int {
		if horizontal {
			return src.PixOffset(src.Rect.Min.X+j, src.Rect.Min.Y+i)
		}
		return src.PixOffset(src.Rect.Min.X+i, src.Rect.Min.Y+j)
	}
	set := func(i, j int) int {
		if horizontal {
			return dst.PixOffset(dst.Rect.Min.X+j, dst.Rect.Min.Y+i)
		}
		return dst.PixOffset(dst.Rect.Min.X+i, dst.Rect.Min.Y+j)
	}
	window := 2*r + 1
	for i := 0; i < outer; i++ {
		var sum [4]int
		for j := -r; j <= r; j++ {
			k := clampIndex(j, inner)
			o := at(i, k)
			for c := 0; c < 4; c++ {
				sum[c] += int(src.Pix[o+c])
			}
		}
		for j := 0; j < inner; j++ {
			o := set(i, j)
			for c := 0; c < 4; c++ {
				dst.Pix[o+c] = uint8(sum[c] / window)
			}
			lead := clampIndex(j+r+1, inner)
			trail := clampIndex(j-r, inner)
			lo, to := at(i, lead), at(i, trail)
			for c := 0; c < 4; c++ {
				sum[c] += int(src.Pix[lo+c]) - int(src.Pix[to+c])
			}
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
