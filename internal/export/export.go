// Package export turns a scene snapshot into downloadable artifacts. Export
// is read-only over the scene: it re-rasterizes the current state and never
// touches the store, so repeated exports are independent.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"Thumbcraft/internal/render"
	"Thumbcraft/internal/state"
)

// PNG rasterizes the scene at its native canvas size, without any edit-time
// guides or selection decoration, and encodes it losslessly. The filename
// carries a millisecond timestamp so repeated exports never collide.
func PNG(sc state.Scene) (data []byte, filename string, err error) {
	img, err := render.Compose(sc, render.Options{})
	if err != nil {
		return nil, "", fmt.Errorf("export png: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("export png: encode: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("thumbnail-%d.png", time.Now().UnixMilli()), nil
}
