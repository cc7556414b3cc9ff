// Package geometry holds the pure math behind the editor: gradient endpoint
// projection, bounding boxes and the per-layer-type resize floors. Nothing in
// here touches scene state.
package geometry

import "math"

type Point struct {
	X, Y float64
}

type Size struct {
	W, H float64
}

// Box is an axis-aligned rectangle in canvas coordinates, before rotation.
type Box struct {
	X, Y, W, H float64
}

func (b Box) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Minimum accepted bounding boxes for a resize gesture. A proposal below the
// floor is rejected outright and the previous geometry kept.
var (
	MinTextBox  = Size{W: 80, H: 40}
	MinImageBox = Size{W: 50, H: 50}
)

// MinFontSize is the hard floor for text resize; no gesture may drive a text
// layer below it.
const MinFontSize = 10

// BelowFloor reports whether the box violates the given minimum size.
func BelowFloor(b Box, min Size) bool {
	return b.W < min.W || b.H < min.H
}

// GradientEndpoints projects the linear gradient axis for the given angle
// onto a W x H canvas. Both endpoints sit on the circle of radius
// d = sqrt((W/2)^2 + (H/2)^2) about the canvas center, so the gradient line
// spans at least the full diagonal for any angle and aspect ratio.
func GradientEndpoints(angleDeg, w, h float64) (start, end Point) {
	cx, cy := w/2, h/2
	d := math.Hypot(w/2, h/2)
	rad := angleDeg * math.Pi / 180
	dx, dy := d*math.Cos(rad), d*math.Sin(rad)
	start = Point{X: cx - dx, Y: cy - dy}
	end = Point{X: cx + dx, Y: cy + dy}
	return start, end
}

// NormalizeAngle maps any angle in degrees onto [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Corners returns the box corners in order: top-left, top-right,
// bottom-right, bottom-left.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{b.X, b.Y},
		{b.X + b.W, b.Y},
		{b.X + b.W, b.Y + b.H},
		{b.X, b.Y + b.H},
	}
}

// Finite reports whether every field of the box is a finite number. Gesture
// math on a degenerate box can produce Inf or NaN; such boxes must never be
// committed.
func (b Box) Finite() bool {
	for _, v := range []float64{b.X, b.Y, b.W, b.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Rotate rotates p about the given pivot by deg degrees.
func Rotate(p, about Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-about.X, p.Y-about.Y
	return Point{
		X: about.X + dx*cos - dy*sin,
		Y: about.Y + dx*sin + dy*cos,
	}
}

// ScaleToSize returns the uniform factor that maps a box of width oldW onto
// width newW. Corner handles preserve aspect ratio, so width alone determines
// the factor.
func ScaleToSize(oldW, newW float64) float64 {
	if oldW <= 0 {
		return 1
	}
	return newW / oldW
}
