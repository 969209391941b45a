// Package colour implements the palette derivation pipeline: distribution
// filtering, HSV quantization, and the qualitative, sequential and divergent
// palette assembly strategies.
package colour

import (
	"fmt"
	"image/color"
	"math"
)

// RGB represents a color in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// White is the default center colour for divergent palettes.
var White = RGB{R: 255, G: 255, B: 255}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// HSV represents a color in hue/saturation/value space.
// All three components are normalized to [0, 1]; hue wraps at 1 rather than
// 360 so that Euclidean distance in the HSV cube weighs the axes equally.
type HSV struct {
	H float64
	S float64
	V float64
}

// Distance returns the Euclidean distance to another HSV colour.
func (h HSV) Distance(other HSV) float64 {
	dh := h.H - other.H
	ds := h.S - other.S
	dv := h.V - other.V
	return math.Sqrt(dh*dh + ds*ds + dv*dv)
}

// RGBToHSV converts an RGB colour to HSV with all components in [0, 1].
func RGBToHSV(c RGB) HSV {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	v := maxVal

	var s float64
	if maxVal > 0 {
		s = delta / maxVal
	}

	var h float64
	if delta > 0 {
		switch maxVal {
		case r:
			h = (g - b) / delta
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/delta + 2
		case b:
			h = (r-g)/delta + 4
		}
		h /= 6
	}

	return HSV{H: h, S: s, V: v}
}

// RGB converts an HSV colour back to 8-bit RGB.
// https://en.wikipedia.org/wiki/HSL_and_HSV#HSV_to_RGB_alternative
func (hsv HSV) RGB() RGB {
	f := func(n float64) uint8 {
		k := math.Mod(n+hsv.H*6, 6)
		c := hsv.V - hsv.V*hsv.S*math.Max(0, math.Min(math.Min(k, 4-k), 1))
		return uint8(math.Round(c * 255))
	}

	return RGB{R: f(5), G: f(3), B: f(1)}
}

// Hex returns the HSV colour hex-encoded via its RGB representation.
func (hsv HSV) Hex() string {
	return hsv.RGB().Hex()
}
