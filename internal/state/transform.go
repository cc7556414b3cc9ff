package state

import (
	"Thumbcraft/internal/geometry"
)

// Gesture commits. Each completed pointer gesture (drag, resize, rotate)
// resolves to exactly one of these calls; intermediate motion is presentation
// state in the canvas widget and never touches the store. Every commit first
// performs an implicit select of the target layer.

// CommitTranslate writes the final drag position. No constraint.
func (s *Store) CommitTranslate(ref LayerRef, x, y float64) {
	s.Select(ref)
	switch ref.Kind {
	case KindText:
		s.UpdateText(ref.ID, func(l *TextLayer) {
			l.X, l.Y = x, y
		})
	case KindImage:
		s.UpdateImage(ref.ID, func(l *ImageLayer) {
			l.X, l.Y = x, y
		})
	}
}

// CommitRotate writes the final rotation angle in degrees. The canvas widget
// clamps the dial range per layer type; the resolver itself does not.
func (s *Store) CommitRotate(ref LayerRef, deg float64) {
	s.Select(ref)
	switch ref.Kind {
	case KindText:
		s.UpdateText(ref.ID, func(l *TextLayer) {
			l.Rotation = deg
		})
	case KindImage:
		s.UpdateImage(ref.ID, func(l *ImageLayer) {
			l.Rotation = deg
		})
	}
}

// CommitResize resolves a corner-handle drag from the previous bounding box
// to the proposed one. Proposals under the per-type floor, or with any
// non-finite field, are rejected and the previous geometry is kept verbatim;
// the return value reports whether the resize was applied.
//
// On acceptance the implied uniform factor goes into the stored scale for
// image layers and into FontSize for text layers. FontSize is floored at
// MinFontSize so no gesture can produce degenerate text.
func (s *Store) CommitResize(ref LayerRef, prev, proposed geometry.Box) bool {
	s.Select(ref)
	if !proposed.Finite() {
		return false
	}
	factor := geometry.ScaleToSize(prev.W, proposed.W)
	switch ref.Kind {
	case KindText:
		if geometry.BelowFloor(proposed, geometry.MinTextBox) {
			return false
		}
		return s.UpdateText(ref.ID, func(l *TextLayer) {
			size := l.FontSize * factor
			if size < geometry.MinFontSize {
				size = geometry.MinFontSize
			}
			l.FontSize = size
			l.X, l.Y = proposed.X, proposed.Y
		})
	case KindImage:
		if geometry.BelowFloor(proposed, geometry.MinImageBox) {
			return false
		}
		return s.UpdateImage(ref.ID, func(l *ImageLayer) {
			l.Scale *= factor
			l.X, l.Y = proposed.X, proposed.Y
		})
	}
	return false
}
