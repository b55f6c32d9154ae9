package anim

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Value is implemented by the types an Engine can animate. The zero value of
// the type is what out-of-range keyframe reads return.
type Value[V any] interface {
	comparable
	// Lerp interpolates linearly towards to, t in [0, 1].
	Lerp(to V, t float64) V
}

// Scalar is a single real value, used for servo angles and brightness levels.
type Scalar float64

// Lerp implements Value.
func (s Scalar) Lerp(to Scalar, t float64) Scalar {
	return s + (to-s)*Scalar(t)
}

// Color is a triple of 0-255 channel intensities.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGB creates a Color from channel values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromColorful converts a colorful.Color, clamping it into the sRGB gamut.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful returns the colour as a colorful.Color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Lerp implements Value. Channels are blended independently in RGB space.
func (c Color) Lerp(to Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	return FromColorful(c.Colorful().BlendRgb(to.Colorful(), t))
}

// Pack returns the colour as a 24-bit 0xRRGGBB word.
func (c Color) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Pack. Bits above 24 are ignored.
func Unpack(rgb uint32) Color {
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}
