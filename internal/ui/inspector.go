package ui

import (
	"fmt"

	"Thumbcraft/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Inspector edits the properties of the selected layer. The panel is rebuilt
// only when the selection moves to a different layer; individual edits write
// straight through to the store and rely on the re-render.
type Inspector struct {
	widget.BaseWidget
	store *state.Store
	box   *fyne.Container
	last  string // layer id the panel was last built for
}

func NewInspector(store *state.Store) *Inspector {
	ins := &Inspector{store: store, box: container.NewVBox()}
	ins.ExtendBaseWidget(ins)
	ins.last = "\x00" // force the first build
	ins.SyncSelection()
	return ins
}

func (ins *Inspector) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVScroll(ins.box))
}

// SyncSelection rebuilds the panel if the selection changed layer. Called
// from the store's change callback, so edits to the current layer do not
// tear down the controls mid-typing.
func (ins *Inspector) SyncSelection() {
	sel := ins.store.Selection()
	id := ""
	if sel != nil {
		id = sel.ID
	}
	if id == ins.last {
		return
	}
	ins.last = id
	ins.rebuild()
}

func (ins *Inspector) rebuild() {
	ins.box.Objects = nil
	defer ins.box.Refresh()

	sel := ins.store.Selection()
	if sel == nil {
		ins.box.Add(widget.NewLabel("No layer selected"))
		return
	}
	sc := ins.store.Scene()
	switch sel.Kind {
	case state.KindText:
		for i := range sc.Texts {
			if sc.Texts[i].ID == sel.ID {
				ins.buildText(sc.Texts[i])
				return
			}
		}
	case state.KindImage:
		for i := range sc.Images {
			if sc.Images[i].ID == sel.ID {
				ins.buildImage(sc.Images[i])
				return
			}
		}
	}
	ins.box.Add(widget.NewLabel("No layer selected"))
}

func (ins *Inspector) buildText(l state.TextLayer) {
	id := l.ID
	update := func(mutate func(*state.TextLayer)) {
		ins.store.UpdateText(id, mutate)
	}

	label := widget.NewEntry()
	label.SetText(l.Label)
	label.OnChanged = func(v string) {
		update(func(l *state.TextLayer) { l.Label = v })
	}

	text := widget.NewMultiLineEntry()
	text.SetText(l.Text)
	text.OnChanged = func(v string) {
		update(func(l *state.TextLayer) { l.Text = v })
	}

	size := widget.NewSlider(10, 300)
	size.SetValue(l.FontSize)
	size.OnChanged = func(v float64) {
		update(func(l *state.TextLayer) { l.FontSize = v })
	}

	bold := widget.NewCheck("Bold", func(on bool) {
		update(func(l *state.TextLayer) {
			if on {
				l.FontStyle = state.StyleBold
			} else {
				l.FontStyle = state.StyleNormal
			}
		})
	})
	bold.SetChecked(l.FontStyle == state.StyleBold)

	upper := widget.NewCheck("Uppercase", func(on bool) {
		update(func(l *state.TextLayer) { l.Uppercase = on })
	})
	upper.SetChecked(l.Uppercase)

	align := widget.NewSelect([]string{"left", "center", "right"}, func(v string) {
		update(func(l *state.TextLayer) { l.Align = state.Align(v) })
	})
	align.SetSelected(string(l.Align))

	fill := hexEntry(l.Fill, func(v string) {
		update(func(l *state.TextLayer) { l.Fill = v })
	})
	stroke := hexEntry(l.Stroke, func(v string) {
		update(func(l *state.TextLayer) { l.Stroke = v })
	})

	strokeW := widget.NewSlider(0, 12)
	strokeW.SetValue(l.StrokeWidth)
	strokeW.OnChanged = func(v float64) {
		update(func(l *state.TextLayer) { l.StrokeWidth = v })
	}

	ins.box.Add(widget.NewLabel("Text layer"))
	ins.box.Add(labeled("Label", label))
	ins.box.Add(labeled("Text", text))
	ins.box.Add(labeled("Size", size))
	ins.box.Add(bold)
	ins.box.Add(upper)
	ins.box.Add(labeled("Align", align))
	ins.box.Add(labeled("Fill", fill))
	ins.box.Add(labeled("Stroke", stroke))
	ins.box.Add(labeled("Stroke width", strokeW))
	ins.addShadow(l.Shadow, func(mutate func(*state.Shadow)) {
		update(func(l *state.TextLayer) { mutate(&l.Shadow) })
	})
}

func (ins *Inspector) buildImage(l state.ImageLayer) {
	id := l.ID
	update := func(mutate func(*state.ImageLayer)) {
		ins.store.UpdateImage(id, mutate)
	}

	label := widget.NewEntry()
	label.SetText(l.Label)
	label.OnChanged = func(v string) {
		update(func(l *state.ImageLayer) { l.Label = v })
	}

	opacity := widget.NewSlider(0, 1)
	opacity.Step = 0.05
	opacity.SetValue(l.Opacity)
	opacity.OnChanged = func(v float64) {
		update(func(l *state.ImageLayer) { l.Opacity = v })
	}

	ins.box.Add(widget.NewLabel("Image layer"))
	ins.box.Add(labeled("Label", label))
	ins.box.Add(widget.NewLabel(fmt.Sprintf("Source: %s", l.SrcName)))
	ins.box.Add(labeled("Opacity", opacity))
	ins.addShadow(l.Shadow, func(mutate func(*state.Shadow)) {
		update(func(l *state.ImageLayer) { mutate(&l.Shadow) })
	})
}

func (ins *Inspector) addShadow(sh state.Shadow, update func(func(*state.Shadow))) {
	opacity := widget.NewSlider(0, 1)
	opacity.Step = 0.05
	opacity.SetValue(sh.Opacity)
	opacity.OnChanged = func(v float64) {
		update(func(s *state.Shadow) { s.Opacity = v })
	}

	blur := widget.NewSlider(0, 40)
	blur.SetValue(sh.Blur)
	blur.OnChanged = func(v float64) {
		update(func(s *state.Shadow) { s.Blur = v })
	}

	offX := widget.NewSlider(-50, 50)
	offX.SetValue(sh.OffsetX)
	offX.OnChanged = func(v float64) {
		update(func(s *state.Shadow) { s.OffsetX = v })
	}
	offY := widget.NewSlider(-50, 50)
	offY.SetValue(sh.OffsetY)
	offY.OnChanged = func(v float64) {
		update(func(s *state.Shadow) { s.OffsetY = v })
	}

	shColor := hexEntry(sh.Color, func(v string) {
		update(func(s *state.Shadow) { s.Color = v })
	})

	ins.box.Add(widget.NewSeparator())
	ins.box.Add(widget.NewLabel("Shadow"))
	ins.box.Add(labeled("Opacity", opacity))
	ins.box.Add(labeled("Blur", blur))
	ins.box.Add(labeled("Offset X", offX))
	ins.box.Add(labeled("Offset Y", offY))
	ins.box.Add(labeled("Color", shColor))
}

// hexEntry only commits values that look like a #rrggbb color, so a
// half-typed value never reaches the renderer.
func hexEntry(initial string, commit func(string)) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(initial)
	e.OnChanged = func(v string) {
		if len(v) == 7 && v[0] == '#' {
			commit(v)
		}
	}
	return e
}

func labeled(name string, w fyne.CanvasObject) fyne.CanvasObject {
	return container.NewVBox(widget.NewLabel(name), w)
}
