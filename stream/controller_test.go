package stream

import (
	"errors"
	"testing"

	"github.com/matt-g-everett/keyframer/anim"
)

type testClock struct {
	now int64
}

func (c *testClock) ms() int64 {
	return c.now
}

func newTestController(t *testing.T, outputs ...OutputConfig) (*Controller, *testClock) {
	t.Helper()
	var config Config
	config.Outputs = outputs
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		t.Fatalf("Invalid config: %v", err)
	}

	c, err := NewController(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	clock := new(testClock)
	c.SetClock(clock.ms)
	return c, clock
}

func standardOutputs() []OutputConfig {
	return []OutputConfig{
		{Name: "pan", Kind: KindServo},
		{Name: "lamp", Kind: KindLED, LEDMode: "digital"},
		{Name: "eye", Kind: KindRGB},
	}
}

func tick(t *testing.T, c *Controller) *Frame {
	t.Helper()
	f, err := c.Tick()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return f
}

func TestControllerPlay(t *testing.T) {
	c, clock := newTestController(t, standardOutputs()...)

	if err := c.Play("pan", "sweep", anim.Once); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := c.Play("lamp", "on", anim.Once); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := c.Play("eye", "white", anim.Once); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	clock.now = 500
	f := tick(t, c)
	if f.Len() != 3 {
		t.Fatalf("Expected 3 slots, got %d", f.Len())
	}
	if f.Int(0) != 90 {
		t.Errorf("Servo should be half way through its sweep, got %d", f.Int(0))
	}
	if f.Slot(1) != 255 {
		t.Errorf("Lamp should be on, got %d", f.Slot(1))
	}
	if f.Slot(2) != 0xffffff {
		t.Errorf("Eye should be white, got %06x", f.Slot(2))
	}

	clock.now = 2000
	if f := tick(t, c); f.Int(0) != 180 {
		t.Errorf("Servo should end its sweep at 180, got %d", f.Int(0))
	}
}

func TestControllerErrors(t *testing.T) {
	c, _ := newTestController(t, standardOutputs()...)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unknown output", c.Play("tail", "sweep", anim.Once), ErrUnknownOutput},
		{"unknown track", c.Play("pan", "moonwalk", anim.Once), ErrUnknownTrack},
		{"kind mismatch", c.Play("pan", "rainbow", anim.Loop), ErrKindMismatch},
		{"crossfade mismatch", c.Crossfade("eye", "sweep", 100, anim.Once), ErrKindMismatch},
		{"pause unknown", c.Pause("tail"), ErrUnknownOutput},
		{"speed unknown", c.SetSpeed("tail", 2), ErrUnknownOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, tt.err)
			}
		})
	}

	if _, err := c.Status("tail"); !errors.Is(err, ErrUnknownOutput) {
		t.Errorf("Expected ErrUnknownOutput, got %v", err)
	}
}

func TestControllerPauseResume(t *testing.T) {
	c, clock := newTestController(t, OutputConfig{Name: "pan", Kind: KindServo})
	c.Play("pan", "sweep", anim.Once)

	clock.now = 250
	tick(t, c)
	c.Pause("pan")

	clock.now = 750
	if f := tick(t, c); f.Int(0) != 45 {
		t.Errorf("Paused servo should hold 45, got %d", f.Int(0))
	}

	c.Resume("pan")
	clock.now = 1000
	if f := tick(t, c); f.Int(0) != 90 {
		t.Errorf("Resumed servo should reach 90, got %d", f.Int(0))
	}

	c.Stop("pan")
	clock.now = 5000
	if f := tick(t, c); f.Int(0) != 90 {
		t.Errorf("Stopped servo should hold 90, got %d", f.Int(0))
	}
}

func TestControllerSpeed(t *testing.T) {
	c, clock := newTestController(t, OutputConfig{Name: "pan", Kind: KindServo})
	c.Play("pan", "sweep", anim.Once)
	c.SetSpeed("pan", 2)

	clock.now = 1000
	if f := tick(t, c); f.Int(0) != 90 {
		t.Errorf("At speed 2 the sweep should be half way after 1000ms, got %d", f.Int(0))
	}
}

func TestControllerCrossfade(t *testing.T) {
	c, clock := newTestController(t, OutputConfig{Name: "eye", Kind: KindRGB})
	c.Play("eye", "white", anim.Once)
	tick(t, c)

	if err := c.Crossfade("eye", "off", 1000, anim.Once); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	clock.now = 500
	if f := tick(t, c); f.Slot(0) != 0x808080 {
		t.Errorf("Expected grey half way through the blend, got %06x", f.Slot(0))
	}
	clock.now = 1000
	if f := tick(t, c); f.Slot(0) != 0 {
		t.Errorf("Expected black after the blend, got %06x", f.Slot(0))
	}
}

func TestControllerStartTrack(t *testing.T) {
	_, err := NewController(Config{Outputs: []OutputConfig{
		{Name: "pan", Kind: KindServo, Track: "rainbow"},
	}})
	if !errors.Is(err, ErrKindMismatch) && !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("Expected a track error, got %v", err)
	}

	c, _ := newTestController(t, OutputConfig{Name: "lamp", Kind: KindLED, Track: "on", Mode: "loop"})
	s, err := c.Status("lamp")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	state := s.State.(anim.Snapshot[anim.Scalar])
	if state.Track != "on" || state.Mode != anim.Loop || state.Phase != anim.Playing {
		t.Errorf("Unexpected state %+v", state)
	}
}

func TestControllerStatus(t *testing.T) {
	c, clock := newTestController(t, standardOutputs()...)
	c.Play("pan", "sweep", anim.Once)
	clock.now = 500
	tick(t, c)

	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("Expected 3 statuses, got %d", len(statuses))
	}
	pan := statuses[0]
	if pan.Name != "pan" || pan.Kind != KindServo || pan.Slot != 0 || pan.Output != 90 {
		t.Errorf("Unexpected status %+v", pan)
	}
	if statuses[2].Output != "#000000" {
		t.Errorf("Idle eye should be black, got %v", statuses[2].Output)
	}

	tracks := c.Tracks()
	if len(tracks[KindServo]) == 0 || len(tracks[KindRGB]) == 0 {
		t.Errorf("Expected preset tracks, got %v", tracks)
	}
	if got := c.Outputs(); len(got) != 3 || got[1] != "lamp" {
		t.Errorf("Unexpected outputs %v", got)
	}
}

func TestControllerZeroThresholdIsAlwaysOn(t *testing.T) {
	zero := 0.0
	c, _ := newTestController(t, OutputConfig{Name: "lamp", Kind: KindLED, LEDMode: "digital", Threshold: &zero})
	if err := c.Play("lamp", "off", anim.Once); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if f := tick(t, c); f.Slot(0) != 255 {
		t.Errorf("A zero threshold should keep the lamp on, got %d", f.Slot(0))
	}
}
