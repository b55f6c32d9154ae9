package output

import (
	"math"
	"testing"

	"github.com/matt-g-everett/keyframer/anim"
)

func ramp(name string, from, to anim.Scalar, duration int64) *anim.Track[anim.Scalar] {
	return anim.NewTrack[anim.Scalar](name).AddKeyframe(0, from).AddKeyframe(duration, to)
}

func TestScalarTransform(t *testing.T) {
	s := NewScalar()
	s.Play(0, ramp("ramp", 0, 1, 1000), anim.Once)

	if v := s.Output(500); v != 0.5 {
		t.Errorf("Identity transform: expected 0.5, got %v", v)
	}

	s.SetValueScale(180)
	s.SetValueOffset(10)
	tests := []struct {
		now      int64
		expected float64
	}{
		{0, 10},
		{250, 55},
		{1000, 190},
	}
	for _, tt := range tests {
		s.Play(0, ramp("ramp", 0, 1, 1000), anim.Once)
		if v := s.Output(tt.now); math.Abs(v-tt.expected) > 1e-9 {
			t.Errorf("At %dms: expected %v, got %v", tt.now, tt.expected, v)
		}
	}

	s.SetValueRange(150, 20)
	if lo, hi := s.ValueRange(); lo != 20 || hi != 150 {
		t.Errorf("Expected swapped range [20,150], got [%v,%v]", lo, hi)
	}
	if v := s.Current(); v != 150 {
		t.Errorf("Expected clamp to 150, got %v", v)
	}
}

func TestScalarRoundingAndChanges(t *testing.T) {
	s := NewScalar()
	s.Play(0, ramp("ramp", 0, 10, 1000), anim.Once)

	s.Output(0)
	if !s.Changed() {
		t.Error("First check should report a change")
	}
	if s.Changed() {
		t.Error("No sample between checks should mean no change")
	}

	s.Output(40) // 0.4 rounds to 0
	if s.Changed() {
		t.Error("Sub-integer movement should not count as a change")
	}

	s.Output(50) // 0.5 rounds away from zero
	if s.Int() != 1 {
		t.Errorf("Expected 1, got %d", s.Int())
	}
	if !s.Changed() {
		t.Error("Expected a change at 1")
	}

	// a second adapter has its own history
	other := NewScalar()
	other.Play(0, ramp("ramp", 0, 10, 1000), anim.Once)
	other.Output(50)
	if !other.Changed() {
		t.Error("Change detection should not be shared between adapters")
	}
}

func TestServo(t *testing.T) {
	var written []int
	servo := NewServo(AngleFunc(func(deg int) error {
		written = append(written, deg)
		return nil
	}), 180, 20)

	if lo, hi := servo.Limits(); lo != 20 || hi != 180 {
		t.Errorf("Expected limits [20,180], got [%d,%d]", lo, hi)
	}

	servo.Play(0, ramp("sweep", 0, 200, 1000), anim.Once)
	for _, now := range []int64{0, 10, 500, 505, 1000, 2000} {
		if err := servo.Update(now); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	expected := []int{20, 100, 101, 180}
	if len(written) != len(expected) {
		t.Fatalf("Expected writes %v, got %v", expected, written)
	}
	for i := range expected {
		if written[i] != expected[i] {
			t.Errorf("Write %d: expected %d, got %d", i, expected[i], written[i])
		}
	}
}
