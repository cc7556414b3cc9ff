package main

import (
	"log"

	"Thumbcraft/internal/state"
	"Thumbcraft/internal/ui"
)

func main() {
	log.Println("Starting Thumbcraft")

	store := state.NewStore()
	// Fresh documents open with one default headline layer.
	store.AddText(state.NewTextLayer())
	store.ClearSelection()

	ui.RunApp(store)
}
