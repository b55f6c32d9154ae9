package stream

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matt-g-everett/keyframer/anim"
	"github.com/matt-g-everett/keyframer/output"
	"github.com/matt-g-everett/keyframer/presets"
)

// Errors returned by the Controller.
var (
	ErrUnknownOutput  = errors.New("unknown output")
	ErrUnknownTrack   = errors.New("unknown track")
	ErrUnknownCommand = errors.New("unknown command")
	ErrKindMismatch   = errors.New("track belongs to another kind of output")
)

// OutputStatus describes an output and its playback state.
type OutputStatus struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Slot   int    `json:"slot"`
	Output any    `json:"output"`
	State  any    `json:"state"`
}

// channel is an output as seen by the Controller.
type channel interface {
	kind() Kind
	has(track string) bool
	play(now int64, track string, mode anim.PlayMode) bool
	crossfade(now int64, track string, blendMs int64, mode anim.PlayMode) bool
	pause(now int64)
	resume(now int64)
	stop()
	setSpeed(now int64, speed float64)
	update(now int64) error
	status(now int64) (value any, state any)
	tracks() []string
}

// engineChannel binds an engine to the adapter that drives a frame slot.
type engineChannel[V anim.Value[V]] struct {
	k      Kind
	engine *anim.Engine[V]
	apply  func(now int64) error
	out    func() any
}

func (c *engineChannel[V]) kind() Kind { return c.k }

func (c *engineChannel[V]) has(track string) bool {
	_, found := c.engine.Lookup(track)
	return found
}

func (c *engineChannel[V]) play(now int64, track string, mode anim.PlayMode) bool {
	return c.engine.PlayNamed(now, track, mode)
}

func (c *engineChannel[V]) crossfade(now int64, track string, blendMs int64, mode anim.PlayMode) bool {
	return c.engine.CrossfadeToNamed(now, track, blendMs, mode)
}

func (c *engineChannel[V]) pause(now int64)                   { c.engine.Pause(now) }
func (c *engineChannel[V]) resume(now int64)                  { c.engine.Resume(now) }
func (c *engineChannel[V]) stop()                             { c.engine.Stop() }
func (c *engineChannel[V]) setSpeed(now int64, speed float64) { c.engine.SetSpeed(now, speed) }
func (c *engineChannel[V]) update(now int64) error            { return c.apply(now) }
func (c *engineChannel[V]) tracks() []string                  { return c.engine.Tracks() }

func (c *engineChannel[V]) status(now int64) (any, any) {
	return c.out(), c.engine.State(now)
}

// Controller owns the configured outputs and renders them into a Frame. It
// is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	clock    func() int64
	frame    *Frame
	names    []string
	slots    map[string]int
	channels map[string]channel
}

// NewController builds the outputs described by config, loads the preset
// tracks into each and starts any configured track.
func NewController(config Config) (*Controller, error) {
	c := new(Controller)
	start := time.Now()
	c.clock = func() int64 { return time.Since(start).Milliseconds() }
	c.frame = NewFrame(len(config.Outputs))
	c.slots = make(map[string]int)
	c.channels = make(map[string]channel)

	for i, o := range config.Outputs {
		ch, err := c.build(i, o)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", o.Name, err)
		}
		c.names = append(c.names, o.Name)
		c.slots[o.Name] = i
		c.channels[o.Name] = ch
	}

	for _, o := range config.Outputs {
		if o.Track == "" {
			continue
		}
		mode, err := anim.ParseMode(o.Mode)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", o.Name, err)
		}
		if err := c.Play(o.Name, o.Track, mode); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func applyTransform(s *output.Scalar, o OutputConfig) {
	if o.Scale != 0 {
		s.SetValueScale(o.Scale)
	}
	s.SetValueOffset(o.Offset)
	lo, hi := s.ValueRange()
	if o.Min != nil {
		lo = *o.Min
	}
	if o.Max != nil {
		hi = *o.Max
	}
	s.SetValueRange(lo, hi)
}

func registerAll[V anim.Value[V]](e *anim.Engine[V], tracks []*anim.Track[V]) {
	for _, t := range tracks {
		e.Register(t)
	}
}

func (c *Controller) build(slot int, o OutputConfig) (channel, error) {
	switch o.Kind {
	case KindServo:
		servo := output.NewServo(output.AngleFunc(func(deg int) error {
			c.frame.Set(slot, uint32(int32(deg)))
			return nil
		}), o.MinAngle, o.MaxAngle)
		applyTransform(servo.Scalar, o)
		registerAll(servo.Engine, presets.Scalars())
		return &engineChannel[anim.Scalar]{
			k:      KindServo,
			engine: servo.Engine,
			apply:  servo.Update,
			out:    func() any { return servo.Angle() },
		}, nil

	case KindLED:
		mode, err := output.ParseLEDMode(o.LEDMode)
		if err != nil {
			return nil, err
		}
		led := output.NewLED(levelSlot{frame: c.frame, index: slot}, mode)
		if o.Threshold != nil {
			led.SetThreshold(*o.Threshold)
		}
		applyTransform(led.Scalar, o)
		registerAll(led.Engine, presets.Scalars())
		if err := led.Begin(); err != nil {
			return nil, err
		}
		return &engineChannel[anim.Scalar]{
			k:      KindLED,
			engine: led.Engine,
			apply:  led.Update,
			out: func() any {
				if led.Mode() == output.Digital {
					return led.On()
				}
				return led.Level()
			},
		}, nil

	case KindRGB:
		rgb := output.NewRGB(output.ColorFunc(func(v uint32) error {
			c.frame.Set(slot, v)
			return nil
		}))
		registerAll(rgb.Engine, presets.Colors())
		return &engineChannel[anim.Color]{
			k:      KindRGB,
			engine: rgb.Engine,
			apply:  rgb.Update,
			out:    func() any { return rgb.Value().Hex() },
		}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", o.Kind)
}

// SetClock replaces the millisecond clock used to drive the engines.
func (c *Controller) SetClock(clock func() int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
}

// Outputs lists the output names in slot order.
func (c *Controller) Outputs() []string {
	return append([]string(nil), c.names...)
}

func (c *Controller) lookup(name string) (channel, error) {
	ch, found := c.channels[name]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, name)
	}
	return ch, nil
}

// trackError explains why track could not be played on ch.
func (c *Controller) trackError(ch channel, track string) error {
	for _, other := range c.channels {
		if other.kind() != ch.kind() && other.has(track) {
			return fmt.Errorf("%w: %s is a %s track", ErrKindMismatch, track, other.kind())
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTrack, track)
}

// Play starts a track on an output.
func (c *Controller) Play(name, track string, mode anim.PlayMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, err := c.lookup(name)
	if err != nil {
		return err
	}
	if !ch.play(c.clock(), track, mode) {
		return c.trackError(ch, track)
	}
	return nil
}

// Crossfade blends an output from its current value into a track.
func (c *Controller) Crossfade(name, track string, blendMs int64, mode anim.PlayMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, err := c.lookup(name)
	if err != nil {
		return err
	}
	if !ch.crossfade(c.clock(), track, blendMs, mode) {
		return c.trackError(ch, track)
	}
	return nil
}

func (c *Controller) with(name string, fn func(ch channel, now int64)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, err := c.lookup(name)
	if err != nil {
		return err
	}
	fn(ch, c.clock())
	return nil
}

// Pause freezes an output.
func (c *Controller) Pause(name string) error {
	return c.with(name, func(ch channel, now int64) { ch.pause(now) })
}

// Resume continues a paused output.
func (c *Controller) Resume(name string) error {
	return c.with(name, func(ch channel, now int64) { ch.resume(now) })
}

// Stop halts an output, which holds its last value.
func (c *Controller) Stop(name string) error {
	return c.with(name, func(ch channel, _ int64) { ch.stop() })
}

// SetSpeed changes the playback speed of an output.
func (c *Controller) SetSpeed(name string, speed float64) error {
	return c.with(name, func(ch channel, now int64) { ch.setSpeed(now, speed) })
}

// Status describes one output.
func (c *Controller) Status(name string) (OutputStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, err := c.lookup(name)
	if err != nil {
		return OutputStatus{}, err
	}
	return c.statusOf(name, ch, c.clock()), nil
}

// Statuses describes every output in slot order.
func (c *Controller) Statuses() []OutputStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	out := make([]OutputStatus, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.statusOf(name, c.channels[name], now))
	}
	return out
}

func (c *Controller) statusOf(name string, ch channel, now int64) OutputStatus {
	value, state := ch.status(now)
	return OutputStatus{
		Name:   name,
		Kind:   ch.kind(),
		Slot:   c.slots[name],
		Output: value,
		State:  state,
	}
}

// Tracks lists the tracks known to each kind of output.
func (c *Controller) Tracks() map[Kind][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Kind][]string)
	for _, name := range c.names {
		ch := c.channels[name]
		if _, found := out[ch.kind()]; !found {
			out[ch.kind()] = ch.tracks()
		}
	}
	return out
}

// Tick samples every output and returns a copy of the resulting Frame.
// Driver errors are collected; the Frame is still returned.
func (c *Controller) Tick() (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	var errs []error
	for _, name := range c.names {
		if err := c.channels[name].update(now); err != nil {
			errs = append(errs, fmt.Errorf("output %q: %w", name, err))
		}
	}
	return c.frame.Clone(), errors.Join(errs...)
}
