package ui

import (
	"Thumbcraft/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// RunApp wires the store to the widgets and runs the event loop.
func RunApp(store *state.Store) {
	myApp := app.New()
	win := myApp.NewWindow("Thumbcraft")
	win.Resize(fyne.NewSize(1100, 700))

	cv := NewCanvasWidget(store)
	inspector := NewInspector(store)
	statusBar := widget.NewLabel("Ready")
	setStatus := func(msg string) {
		fyne.Do(func() { statusBar.SetText(msg) })
	}
	cv.OnStatus = setStatus

	store.OnChange = func() {
		fyne.Do(func() {
			cv.Refresh()
			inspector.SyncSelection()
		})
	}

	toolbar := NewToolbar(store, cv, win, setStatus)
	side := container.New(layout.NewGridWrapLayout(fyne.NewSize(260, 620)), inspector)
	content := container.NewBorder(toolbar, statusBar, nil, side, container.NewScroll(cv))

	win.SetContent(content)
	win.ShowAndRun()
}
