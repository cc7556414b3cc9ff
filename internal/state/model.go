package state

import "image"

type BackgroundMode string

const (
	BackgroundSolid    BackgroundMode = "solid"
	BackgroundGradient BackgroundMode = "gradient"
)

// CanvasConfig is the document-level configuration: output size, background
// fill and the edit-time guide toggles.
type CanvasConfig struct {
	Width          int
	Height         int
	BackgroundMode BackgroundMode
	SolidColor     string
	GradientStart  string
	GradientEnd    string
	GradientAngle  float64 // degrees, interpreted mod 360
	ShowGrid       bool
	ShowSafeZone   bool
}

// DefaultConfig is the fresh-document setup: 720p with the house gradient.
func DefaultConfig() CanvasConfig {
	return CanvasConfig{
		Width:          1280,
		Height:         720,
		BackgroundMode: BackgroundGradient,
		SolidColor:     "#1a1a2e",
		GradientStart:  "#ff0033",
		GradientEnd:    "#ffd300",
		GradientAngle:  32,
		ShowGrid:       true,
		ShowSafeZone:   true,
	}
}

// Shadow is the per-layer drop shadow descriptor. Blur is in canvas units,
// Opacity in [0,1], offsets are applied in screen space after rotation.
type Shadow struct {
	Color   string
	Blur    float64
	Opacity float64
	OffsetX float64
	OffsetY float64
}

type LayerKind string

const (
	KindText  LayerKind = "text"
	KindImage LayerKind = "image"
)

// LayerRef is a non-owning reference to a layer in one of the two
// collections. Refs are only built from live enumeration of the scene, so a
// stale ref is treated as a no-op everywhere it is consumed.
type LayerRef struct {
	Kind LayerKind
	ID   string
}

// LayerBase holds the fields shared by both layer variants. The anchor (X, Y)
// is the top-left of the layer's unrotated bounding box in canvas
// coordinates; rotation is applied about the box center.
type LayerBase struct {
	ID       string
	Label    string
	X        float64
	Y        float64
	Rotation float64 // degrees
	Shadow   Shadow
}

type FontStyle string

const (
	StyleNormal FontStyle = "normal"
	StyleBold   FontStyle = "bold"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextLayer sizes itself through FontSize alone; there is no separate scale
// field, so repeated resizes cannot compound.
type TextLayer struct {
	LayerBase
	Text        string
	FontFamily  string
	FontSize    float64
	FontStyle   FontStyle
	Fill        string
	Stroke      string
	StrokeWidth float64
	Align       Align
	Uppercase   bool // render-time transform, stored text is untouched
}

// ImageLayer wraps an already-decoded image. Pixels are never mutated after
// decode, so snapshots may share the image.Image value.
type ImageLayer struct {
	LayerBase
	Src     image.Image
	SrcName string
	Scale   float64 // uniform, > 0
	Opacity float64 // [0,1]
}

// Scene is a point-in-time copy of the whole document, safe to hand to the
// composer and the inspector without further locking.
type Scene struct {
	Config    CanvasConfig
	Texts     []TextLayer
	Images    []ImageLayer
	Selection *LayerRef
}

// NewTextLayer returns the default text layer inserted by the "add text"
// command.
func NewTextLayer() TextLayer {
	return TextLayer{
		LayerBase: LayerBase{
			X: 140,
			Y: 180,
			Shadow: Shadow{
				Color:   "#000000",
				Blur:    12,
				Opacity: 0.6,
				OffsetX: 4,
				OffsetY: 6,
			},
		},
		Text:        "KILLER THUMBNAILS",
		FontFamily:  "Go",
		FontSize:    96,
		FontStyle:   StyleBold,
		Fill:        "#ffffff",
		Stroke:      "#000000",
		StrokeWidth: 2,
		Align:       AlignLeft,
		Uppercase:   true,
	}
}

// NewImageLayer returns the default layer settings for a freshly decoded
// image. The caller fills in Src and SrcName.
func NewImageLayer(img image.Image, name string) ImageLayer {
	return ImageLayer{
		LayerBase: LayerBase{
			X: 80,
			Y: 80,
			Shadow: Shadow{
				Color:   "#000000",
				Blur:    8,
				Opacity: 0.4,
				OffsetX: 0,
				OffsetY: 4,
			},
		},
		Src:     img,
		SrcName: name,
		Scale:   1,
		Opacity: 1,
	}
}
