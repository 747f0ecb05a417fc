package fireworks

import (
	"image/color"
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied 8-bit RGBA color. It implements color.Color so
// hosts can hand it directly to drawing APIs.
type Color struct {
	R, G, B, A uint8
}

// Predefined colors used by the particle variants.
var (
	ColorRed     = Color{255, 0, 0, 255}
	ColorDarkRed = Color{139, 0, 0, 255}
	ColorGold    = Color{255, 215, 0, 255}
	ColorWhite   = Color{255, 255, 255, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Transparent reports whether the color has zero alpha.
func (c Color) Transparent() bool {
	return c.A == 0
}

// SetAlpha returns c with its alpha replaced by alpha clamped to [0, 255].
func SetAlpha(c Color, alpha int) Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 255 {
		alpha = 255
	}
	c.A = uint8(alpha)
	return c
}

// HueToColor maps a hue angle in degrees to a fully saturated, fully bright
// opaque color. A hue of exactly 0 picks a uniformly random hue from rng;
// any other value wraps modulo 360.
func HueToColor(rng *rand.Rand, hue float64) Color {
	if hue == 0 {
		hue = float64(rng.IntN(360))
	} else {
		hue = math.Mod(hue, 360)
		if hue < 0 {
			hue += 360
		}
	}
	r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
	return Color{r, g, b, 255}
}

// Hue returns the hue angle of c in degrees, in [0, 360).
func (c Color) Hue() float64 {
	h, _, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	return h
}
