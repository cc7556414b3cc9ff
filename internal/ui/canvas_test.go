package ui

import (
	"testing"

	"Thumbcraft/internal/state"
)

func TestClampRotation(t *testing.T) {
	cases := []struct {
		kind state.LayerKind
		in   float64
		want float64
	}{
		{state.KindText, 0, 0},
		{state.KindText, 30, 30},
		{state.KindText, 45, 45},
		{state.KindText, 46, 45},
		{state.KindText, -45, -45},
		{state.KindText, -90, -45},
		{state.KindImage, 60, 60},
		{state.KindImage, 61, 60},
		{state.KindImage, -60, -60},
		{state.KindImage, -179, -60},
		{state.KindImage, 12.5, 12.5},
	}
	for _, c := range cases {
		if got := clampRotation(c.kind, c.in); got != c.want {
			t.Errorf("clampRotation(%s, %v) = %v, want %v", c.kind, c.in, got, c.want)
		}
	}
}
