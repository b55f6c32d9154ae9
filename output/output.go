// Package output adapts animation engines to the things they drive: servos,
// single channel lights and RGB lights. The adapters post-process sampled
// values and hand them to a driver supplied by the caller.
package output

// AngleDriver moves a servo.
type AngleDriver interface {
	WriteAngle(deg int) error
}

// AngleFunc adapts a function to AngleDriver.
type AngleFunc func(deg int) error

// WriteAngle implements AngleDriver.
func (f AngleFunc) WriteAngle(deg int) error {
	return f(deg)
}

// LevelDriver drives a single channel light, either with a PWM level or
// simply on and off.
type LevelDriver interface {
	WriteLevel(level uint8) error
	WriteOn(on bool) error
}

// ColorDriver drives an RGB light with a packed 0xRRGGBB value.
type ColorDriver interface {
	WriteColor(rgb uint32) error
}

// ColorFunc adapts a function to ColorDriver.
type ColorFunc func(rgb uint32) error

// WriteColor implements ColorDriver.
func (f ColorFunc) WriteColor(rgb uint32) error {
	return f(rgb)
}

// changes reports whether a value differs from the one seen last time. The
// first value observed always counts as a change.
type changes[T comparable] struct {
	last   T
	primed bool
}

func (c *changes[T]) observe(v T) bool {
	changed := !c.primed || v != c.last
	c.last = v
	c.primed = true
	return changed
}

// reset makes the next observed value count as a change.
func (c *changes[T]) reset() {
	c.primed = false
}
