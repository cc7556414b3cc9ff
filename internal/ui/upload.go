package ui

import (
	"bytes"
	"fmt"
	"image"
	"log"

	// Decoders for the upload formats the picker offers.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"Thumbcraft/internal/state"
)

// AddImageAsync decodes uploaded bytes off the event loop and, on success,
// inserts the new image layer. Exactly one done callback fires; a failed
// decode inserts nothing and the scene is untouched. There is no
// cancellation: an abandoned upload is simply a result that never arrives.
func AddImageAsync(store *state.Store, name string, data []byte, done func(id string, err error)) {
	go func() {
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			done("", fmt.Errorf("decode %s: %w", name, err))
			return
		}
		log.Printf("upload: decoded %s (%s, %dx%d)", name, format,
			img.Bounds().Dx(), img.Bounds().Dy())
		done(store.AddImage(state.NewImageLayer(img, name)), nil)
	}()
}
