package output

import (
	"github.com/matt-g-everett/keyframer/anim"
)

// RGB drives a ColorDriver from a colour engine. Colours are passed through
// untransformed.
type RGB struct {
	*anim.Engine[anim.Color]
	driver   ColorDriver
	reported changes[uint32]
}

// NewRGB creates an RGB output.
func NewRGB(driver ColorDriver) *RGB {
	r := new(RGB)
	r.Engine = anim.NewEngine[anim.Color]()
	r.driver = driver
	return r
}

// Output samples the engine at now.
func (r *RGB) Output(now int64) anim.Color {
	return r.Sample(now)
}

// Pack is the last sampled colour as 0xRRGGBB.
func (r *RGB) Pack() uint32 {
	return r.Value().Pack()
}

// Changed reports whether the colour differs from what it was at the
// previous call.
func (r *RGB) Changed() bool {
	return r.reported.observe(r.Pack())
}

// Update samples the engine and writes to the driver if the colour changed.
func (r *RGB) Update(now int64) error {
	r.Output(now)
	if !r.Changed() || r.driver == nil {
		return nil
	}
	return r.driver.WriteColor(r.Pack())
}
