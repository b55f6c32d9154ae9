package util

import (
	"sort"

	"github.com/fogleman/ease"
)

// Curve maps progress in [0, 1] to an eased value, normally also in [0, 1].
type Curve func(t float64) float64

var curves = map[string]Curve{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
}

// CurveByName looks up an easing curve, e.g. "inOutQuad".
func CurveByName(name string) (Curve, bool) {
	c, found := curves[name]
	return c, found
}

// CurveNames lists the known curves in alphabetical order.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SampleCurve returns steps+1 evenly spaced samples of c, from c(0) to c(1).
func SampleCurve(c Curve, steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	out := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		out[i] = c(float64(i) / float64(steps))
	}
	return out
}

// GenerateLut creates a look-up table that rises through c and falls back
// symmetrically. An odd length peaks at c(1) in the middle.
func GenerateLut(length int, c Curve) []float64 {
	if length <= 0 {
		return nil
	}
	half := length / 2
	lut := make([]float64, length)
	if half == 0 {
		lut[0] = c(1)
		return lut
	}

	increment := 1.0 / float64(half)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := c(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	if length%2 == 1 {
		lut[half] = c(1)
	}
	return lut
}
