package render

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/models"
)

// Pixel is an alias for color.RGBA for convenience.
type Pixel = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorSky   = color.RGBA{0, 166, 215, 255} // Default background
)

// RGB creates an opaque pixel from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// ToRGBA converts a lit color to an opaque 8-bit pixel.
//
// Channels saturate: values at or above 1 become 255, values at or below 0
// (and NaN) become 0, everything else is scaled by 255 and rounded.
func ToRGBA(c models.Color) color.RGBA {
	return color.RGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: 255,
	}
}

func channel8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
