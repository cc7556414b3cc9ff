package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGradientEndpoints(t *testing.T) {
	angles := []float64{-180, -135, -90, -45, -10, 0, 32, 45, 90, 135, 180}
	sizes := []struct{ w, h float64 }{
		{1280, 720},
		{720, 1280},
		{100, 100},
		{1, 1},
		{1920, 1080},
	}
	for _, size := range sizes {
		cx, cy := size.w/2, size.h/2
		d := math.Hypot(size.w/2, size.h/2)
		for _, angle := range angles {
			start, end := GradientEndpoints(angle, size.w, size.h)

			// Both endpoints are symmetric about the canvas center.
			if !almostEqual(start.X+end.X, 2*cx) || !almostEqual(start.Y+end.Y, 2*cy) {
				t.Errorf("angle %v size %vx%v: endpoints not symmetric: %v %v",
					angle, size.w, size.h, start, end)
			}

			// Each lies at half-diagonal distance from the center.
			for _, p := range []Point{start, end} {
				got := math.Hypot(p.X-cx, p.Y-cy)
				if !almostEqual(got, d) {
					t.Errorf("angle %v size %vx%v: endpoint %v at distance %v, want %v",
						angle, size.w, size.h, p, got, d)
				}
			}
		}
	}
}

func TestGradientEndpointsSpanDiagonal(t *testing.T) {
	start, end := GradientEndpoints(32, 1280, 720)
	span := math.Hypot(end.X-start.X, end.Y-start.Y)
	diag := math.Hypot(1280, 720)
	if span < diag-1e-9 {
		t.Fatalf("gradient span %v shorter than diagonal %v", span, diag)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{365, 5},
		{-90, 270},
		{-360, 0},
		{720.5, 0.5},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); !almostEqual(got, c.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBelowFloor(t *testing.T) {
	cases := []struct {
		box  Box
		min  Size
		want bool
	}{
		{Box{0, 0, 50, 50}, MinImageBox, false},
		{Box{0, 0, 49, 200}, MinImageBox, true},
		{Box{0, 0, 200, 49}, MinImageBox, true},
		{Box{0, 0, 80, 40}, MinTextBox, false},
		{Box{0, 0, 79, 40}, MinTextBox, true},
		{Box{0, 0, 80, 39}, MinTextBox, true},
	}
	for _, c := range cases {
		if got := BelowFloor(c.box, c.min); got != c.want {
			t.Errorf("BelowFloor(%+v, %+v) = %v, want %v", c.box, c.min, got, c.want)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	p := Point{X: 10, Y: 4}
	about := Point{X: 3, Y: 3}
	for _, deg := range []float64{-170, -45, 0, 30, 90, 181} {
		back := Rotate(Rotate(p, about, deg), about, -deg)
		if !almostEqual(back.X, p.X) || !almostEqual(back.Y, p.Y) {
			t.Errorf("rotate %v round trip: got %v, want %v", deg, back, p)
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	got := Rotate(Point{X: 1, Y: 0}, Point{}, 90)
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 1) {
		t.Fatalf("quarter turn = %v, want (0,1)", got)
	}
}

func TestBoxCenterAndContains(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 100, H: 40}
	if c := b.Center(); !almostEqual(c.X, 60) || !almostEqual(c.Y, 40) {
		t.Fatalf("center = %v", c)
	}
	if !b.Contains(Point{X: 10, Y: 20}) || !b.Contains(Point{X: 110, Y: 60}) {
		t.Error("box should contain its corners")
	}
	if b.Contains(Point{X: 9.9, Y: 20}) || b.Contains(Point{X: 60, Y: 60.1}) {
		t.Error("box should not contain outside points")
	}
}

func TestBoxFinite(t *testing.T) {
	if !(Box{X: 1, Y: 2, W: 3, H: 4}).Finite() {
		t.Error("ordinary box reported non-finite")
	}
	for _, b := range []Box{
		{X: math.Inf(1)},
		{Y: math.Inf(-1)},
		{W: math.Inf(1)},
		{H: math.NaN()},
	} {
		if b.Finite() {
			t.Errorf("%+v reported finite", b)
		}
	}
}

func TestScaleToSize(t *testing.T) {
	if got := ScaleToSize(100, 150); !almostEqual(got, 1.5) {
		t.Errorf("ScaleToSize(100, 150) = %v", got)
	}
	if got := ScaleToSize(0, 150); !almostEqual(got, 1) {
		t.Errorf("ScaleToSize with zero width = %v, want 1", got)
	}
}
