package ui

import (
	"log"
	"math"

	"Thumbcraft/internal/geometry"
	"Thumbcraft/internal/render"
	"Thumbcraft/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Rotation dial limits enforced by the interaction surface, per layer type.
const (
	maxTextRotation  = 45.0
	maxImageRotation = 60.0
)

// Preview magnification bounds, shared by SetZoom and the zoom slider.
const (
	minZoom = 0.25
	maxZoom = 3.0
)

// clampRotation limits a dial angle to the range allowed for the layer type.
func clampRotation(kind state.LayerKind, deg float64) float64 {
	limit := maxImageRotation
	if kind == state.KindText {
		limit = maxTextRotation
	}
	return geometry.Clamp(deg, -limit, limit)
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
	gestureRotate
)

// CanvasWidget is the interactive design surface: it previews the composed
// scene and turns pointer gestures into transform commits. Intermediate
// motion only mutates the widget's gesture fields; the store sees exactly one
// commit when the gesture ends.
type CanvasWidget struct {
	widget.BaseWidget
	store   *state.Store
	zoom    float64
	preview *canvas.Image

	gesture    gestureKind
	target     state.LayerRef
	startBox   geometry.Box
	startRot   float64
	handle     int // corner index for resize, opposite corner is the anchor
	grabOffset geometry.Point
	curX, curY float64
	curBox     geometry.Box
	curRot     float64

	OnStatus func(string)
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)

func NewCanvasWidget(store *state.Store) *CanvasWidget {
	c := &CanvasWidget{
		store: store,
		zoom:  0.5,
	}
	c.preview = canvas.NewImageFromImage(nil)
	c.preview.FillMode = canvas.ImageFillStretch
	c.ExtendBaseWidget(c)
	c.Refresh()
	return c
}

// SetZoom changes the preview magnification. Presentation only: stored
// geometry and export are untouched.
func (c *CanvasWidget) SetZoom(factor float64) {
	c.zoom = geometry.Clamp(factor, minZoom, maxZoom)
	c.Refresh()
}

func (c *CanvasWidget) Zoom() float64 { return c.zoom }

func (c *CanvasWidget) status(msg string) {
	if c.OnStatus != nil {
		c.OnStatus(msg)
	}
}

// canvasPoint converts a widget-relative pointer position to canvas
// coordinates.
func (c *CanvasWidget) canvasPoint(pos fyne.Position) geometry.Point {
	return geometry.Point{X: float64(pos.X) / c.zoom, Y: float64(pos.Y) / c.zoom}
}

// pendingScene is the snapshot shown on screen: the store's scene with the
// in-flight gesture applied as presentation state.
func (c *CanvasWidget) pendingScene() state.Scene {
	sc := c.store.Scene()
	if c.gesture == gestureNone {
		return sc
	}
	apply := func(base *state.LayerBase) {
		switch c.gesture {
		case gestureDrag:
			base.X, base.Y = c.curX, c.curY
		case gestureRotate:
			base.Rotation = c.curRot
		case gestureResize:
			base.X, base.Y = c.curBox.X, c.curBox.Y
		}
	}
	factor := geometry.ScaleToSize(c.startBox.W, c.curBox.W)
	switch c.target.Kind {
	case state.KindText:
		for i := range sc.Texts {
			if sc.Texts[i].ID == c.target.ID {
				apply(&sc.Texts[i].LayerBase)
				if c.gesture == gestureResize {
					sc.Texts[i].FontSize *= factor
				}
			}
		}
	case state.KindImage:
		for i := range sc.Images {
			if sc.Images[i].ID == c.target.ID {
				apply(&sc.Images[i].LayerBase)
				if c.gesture == gestureResize {
					sc.Images[i].Scale *= factor
				}
			}
		}
	}
	return sc
}

func (c *CanvasWidget) Refresh() {
	sc := c.pendingScene()
	img, err := render.Compose(sc, render.Options{
		Guides:    true,
		Selection: sc.Selection,
	})
	if err != nil {
		log.Printf("preview compose: %v", err)
		return
	}
	c.preview.Image = img
	c.preview.Refresh()
	c.BaseWidget.Refresh()
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p := c.canvasPoint(e.Position)
	sc := c.store.Scene()

	// Handles of the current selection win over layer bodies.
	if sc.Selection != nil {
		if box, rot, ok := render.LayerBounds(sc, *sc.Selection); ok {
			center := box.Center()
			knob := geometry.Rotate(geometry.Point{X: center.X, Y: box.Y - render.RotateHandleOffset}, center, rot)
			if math.Hypot(p.X-knob.X, p.Y-knob.Y) <= render.HandleSize*1.5 {
				c.beginGesture(gestureRotate, *sc.Selection, box, rot)
				return
			}
			corners := box.Corners()
			for i, corner := range corners {
				hp := geometry.Rotate(corner, center, rot)
				if math.Abs(p.X-hp.X) <= render.HandleSize && math.Abs(p.Y-hp.Y) <= render.HandleSize {
					c.beginGesture(gestureResize, *sc.Selection, box, rot)
					c.handle = i
					return
				}
			}
		}
	}

	if ref, ok := c.hitTest(sc, p); ok {
		c.store.Select(ref)
		box, rot, bok := render.LayerBounds(sc, ref)
		if !bok {
			return
		}
		c.beginGesture(gestureDrag, ref, box, rot)
		c.grabOffset = geometry.Point{X: p.X - box.X, Y: p.Y - box.Y}
		return
	}
	c.store.ClearSelection()
}

func (c *CanvasWidget) beginGesture(kind gestureKind, ref state.LayerRef, box geometry.Box, rot float64) {
	c.gesture = kind
	c.target = ref
	c.startBox = box
	c.startRot = rot
	c.curBox = box
	c.curRot = rot
	c.curX, c.curY = box.X, box.Y
}

// hitTest walks layers topmost first: the text group front to back, then the
// image group front to back. The point is inverse-rotated into the layer's
// unrotated space before the box test.
func (c *CanvasWidget) hitTest(sc state.Scene, p geometry.Point) (state.LayerRef, bool) {
	for i := len(sc.Texts) - 1; i >= 0; i-- {
		box, err := render.TextBounds(sc.Texts[i])
		if err != nil {
			continue
		}
		local := geometry.Rotate(p, box.Center(), -sc.Texts[i].Rotation)
		if box.Contains(local) {
			return state.LayerRef{Kind: state.KindText, ID: sc.Texts[i].ID}, true
		}
	}
	for i := len(sc.Images) - 1; i >= 0; i-- {
		box := render.ImageBounds(sc.Images[i])
		local := geometry.Rotate(p, box.Center(), -sc.Images[i].Rotation)
		if box.Contains(local) {
			return state.LayerRef{Kind: state.KindImage, ID: sc.Images[i].ID}, true
		}
	}
	return state.LayerRef{}, false
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	if c.gesture == gestureNone {
		return
	}
	p := c.canvasPoint(e.Position)
	center := c.startBox.Center()

	switch c.gesture {
	case gestureDrag:
		c.curX = p.X - c.grabOffset.X
		c.curY = p.Y - c.grabOffset.Y

	case gestureResize:
		// An empty text layer measures a zero-size box; the aspect math
		// below would divide by it, so the gesture stays at the start box.
		if c.startBox.W <= 0 || c.startBox.H <= 0 {
			return
		}
		// Work in the layer's unrotated space; the corner opposite the
		// grabbed handle stays fixed and the aspect ratio is locked.
		local := geometry.Rotate(p, center, -c.startRot)
		anchor := c.startBox.Corners()[(c.handle+2)%4]
		w := math.Max(1, math.Abs(local.X-anchor.X))
		h := w * c.startBox.H / c.startBox.W
		box := geometry.Box{W: w, H: h}
		if local.X < anchor.X {
			box.X = anchor.X - w
		} else {
			box.X = anchor.X
		}
		if local.Y < anchor.Y {
			box.Y = anchor.Y - h
		} else {
			box.Y = anchor.Y
		}
		c.curBox = box

	case gestureRotate:
		deg := math.Atan2(p.Y-center.Y, p.X-center.X)*180/math.Pi + 90
		for deg > 180 {
			deg -= 360
		}
		for deg < -180 {
			deg += 360
		}
		c.curRot = clampRotation(c.target.Kind, deg)
	}
	c.Refresh()
}

func (c *CanvasWidget) DragEnd() {
	switch c.gesture {
	case gestureDrag:
		c.store.CommitTranslate(c.target, c.curX, c.curY)
	case gestureResize:
		if !c.store.CommitResize(c.target, c.startBox, c.curBox) {
			// Below the minimum floor: previous geometry is kept.
			c.status("Resize ignored: below minimum size")
			log.Printf("resize rejected for %s/%s: %.0fx%.0f under floor",
				c.target.Kind, c.target.ID, c.curBox.W, c.curBox.H)
		}
	case gestureRotate:
		c.store.CommitRotate(c.target, c.curRot)
	}
	c.gesture = gestureNone
	c.Refresh()
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	// Click without drag: selection was already handled in MouseDown.
	if c.gesture != gestureNone && e.Button == desktop.MouseButtonPrimary {
		c.DragEnd()
	}
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent)    {}
func (c *CanvasWidget) MouseOut()                      {}
func (c *CanvasWidget) MouseMoved(*desktop.MouseEvent) {}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	return &canvasWidgetRenderer{widget: c}
}

type canvasWidgetRenderer struct {
	widget *CanvasWidget
}

func (r *canvasWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.preview}
}

func (r *canvasWidgetRenderer) Layout(fyne.Size) {
	r.widget.preview.Resize(r.MinSize())
}

func (r *canvasWidgetRenderer) MinSize() fyne.Size {
	cfg := r.widget.store.Config()
	return fyne.NewSize(
		float32(float64(cfg.Width)*r.widget.zoom),
		float32(float64(cfg.Height)*r.widget.zoom),
	)
}

func (r *canvasWidgetRenderer) Refresh() { canvas.Refresh(r.widget) }
func (r *canvasWidgetRenderer) Destroy() {}
