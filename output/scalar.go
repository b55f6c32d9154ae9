package output

import (
	"math"

	"github.com/matt-g-everett/keyframer/anim"
)

// Scalar wraps a scalar engine with an affine transform and a clamp:
// output = clamp(value*scale + offset, min, max).
type Scalar struct {
	*anim.Engine[anim.Scalar]

	scale    float64
	offset   float64
	minValue float64
	maxValue float64

	reported changes[int]
}

// NewScalar creates a Scalar with an identity transform and no clamping.
func NewScalar() *Scalar {
	s := new(Scalar)
	s.Engine = anim.NewEngine[anim.Scalar]()
	s.scale = 1.0
	s.offset = 0.0
	s.minValue = math.Inf(-1)
	s.maxValue = math.Inf(1)
	return s
}

// SetValueScale sets the multiplier applied to sampled values.
func (s *Scalar) SetValueScale(scale float64) {
	s.scale = scale
}

// SetValueOffset sets the offset added after scaling.
func (s *Scalar) SetValueOffset(offset float64) {
	s.offset = offset
}

// SetValueRange sets the bounds the output is clamped to.
func (s *Scalar) SetValueRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	s.minValue = min
	s.maxValue = max
}

// ValueRange returns the output bounds.
func (s *Scalar) ValueRange() (float64, float64) {
	return s.minValue, s.maxValue
}

// Adjust applies the transform to v.
func (s *Scalar) Adjust(v anim.Scalar) float64 {
	out := float64(v)*s.scale + s.offset
	return math.Max(s.minValue, math.Min(out, s.maxValue))
}

// Output samples the engine at now and returns the adjusted value.
func (s *Scalar) Output(now int64) float64 {
	return s.Adjust(s.Sample(now))
}

// Current is the adjusted value of the last sample.
func (s *Scalar) Current() float64 {
	return s.Adjust(s.Value())
}

// Int is Current rounded to the nearest integer.
func (s *Scalar) Int() int {
	return int(math.Round(s.Current()))
}

// Changed reports whether Int differs from what it was at the previous call.
func (s *Scalar) Changed() bool {
	return s.reported.observe(s.Int())
}
