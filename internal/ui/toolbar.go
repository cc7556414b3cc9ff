package ui

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"Thumbcraft/internal/export"
	"Thumbcraft/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var imageFilter = storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"})

// NewToolbar builds the command strip: layer commands, background controls,
// guide toggles, zoom and export. Every control issues one store command and
// leaves the rest to the re-render.
func NewToolbar(store *state.Store, cv *CanvasWidget, win fyne.Window, status func(string)) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			store.AddText(state.NewTextLayer())
			status("Text layer added")
		}),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), func() {
			openImagePicker(store, win, status)
		}),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() {
			if store.DuplicateSelected() == "" {
				status("Nothing selected")
			} else {
				status("Layer duplicated")
			}
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			store.DeleteSelected()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			saveArtifact(win, status, func() ([]byte, string, error) {
				return export.PNG(store.Scene())
			})
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			saveArtifact(win, status, func() ([]byte, string, error) {
				return export.PDF(store.Scene())
			})
		}),
	)

	modeSelect := widget.NewSelect([]string{"gradient", "solid"}, func(v string) {
		store.UpdateConfig(func(cfg *state.CanvasConfig) {
			cfg.BackgroundMode = state.BackgroundMode(v)
		})
	})
	modeSelect.SetSelected(string(store.Config().BackgroundMode))

	angle := widget.NewSlider(0, 360)
	angle.SetValue(store.Config().GradientAngle)
	angle.OnChanged = func(v float64) {
		store.UpdateConfig(func(cfg *state.CanvasConfig) {
			cfg.GradientAngle = v
		})
	}

	grid := widget.NewCheck("Grid", func(on bool) {
		store.UpdateConfig(func(cfg *state.CanvasConfig) { cfg.ShowGrid = on })
	})
	grid.SetChecked(store.Config().ShowGrid)
	safe := widget.NewCheck("Safe zone", func(on bool) {
		store.UpdateConfig(func(cfg *state.CanvasConfig) { cfg.ShowSafeZone = on })
	})
	safe.SetChecked(store.Config().ShowSafeZone)

	zoomLabel := widget.NewLabel(zoomText(cv.Zoom()))
	zoom := widget.NewSlider(minZoom, maxZoom)
	zoom.Step = 0.25
	zoom.SetValue(cv.Zoom())
	zoom.OnChanged = func(v float64) {
		cv.SetZoom(v)
		zoomLabel.SetText(zoomText(v))
	}

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Background:"),
		modeSelect,
		widget.NewLabel("Angle:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), angle),
		widget.NewSeparator(),
		grid,
		safe,
		widget.NewSeparator(),
		zoomLabel,
		container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), zoom),
		layout.NewSpacer(),
	)
}

func zoomText(v float64) string {
	return strconv.Itoa(int(v*100)) + "%"
}

func openImagePicker(store *state.Store, win fyne.Window, status func(string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			status("Open failed: " + err.Error())
			return
		}
		if reader == nil {
			return // picker dismissed, no layer is created
		}
		defer reader.Close()
		name := reader.URI().Name()
		data, err := io.ReadAll(reader)
		if err != nil {
			status("Read failed: " + err.Error())
			return
		}
		status("Decoding " + name + "...")
		AddImageAsync(store, name, data, func(id string, err error) {
			if err != nil {
				log.Printf("image upload: %v", err)
				status("Could not decode " + name)
				return
			}
			status("Image layer added")
		})
	}, win)
	fd.SetFilter(imageFilter)
	fd.Show()
}

// saveArtifact runs the export off the event loop, then prompts for a target
// and writes the bytes. The scene stays editable while encoding runs.
func saveArtifact(win fyne.Window, status func(string), produce func() ([]byte, string, error)) {
	go func() {
		data, name, err := produce()
		if err != nil {
			log.Printf("export: %v", err)
			status("Export failed: " + err.Error())
			return
		}
		fyne.Do(func() {
			fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil || writer == nil {
					return
				}
				defer writer.Close()
				if _, err := writer.Write(data); err != nil {
					status("Save failed: " + err.Error())
					return
				}
				status(fmt.Sprintf("Saved %s (%d bytes)", writer.URI().Name(), len(data)))
			}, win)
			fd.SetFileName(name)
			fd.Show()
		})
	}()
}
