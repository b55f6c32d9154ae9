package anim

import (
	"testing"
)

func TestTrackAccessors(t *testing.T) {
	track := NewTrack[Scalar]("nod").
		AddKeyframe(0, 10).
		AddKeyframe(250, 90).
		AddKeyframe(-5, 40)

	if track.Name() != "nod" {
		t.Errorf("Expected name nod, got %s", track.Name())
	}
	if track.Count() != 3 {
		t.Fatalf("Expected 3 keyframes, got %d", track.Count())
	}

	// keyframes are not sorted and negative times become 0
	if track.TimeAt(2) != 0 {
		t.Errorf("Expected time 0 for clamped keyframe, got %d", track.TimeAt(2))
	}
	if track.Duration() != 0 {
		t.Errorf("Expected duration from last keyframe (0), got %d", track.Duration())
	}

	tests := []struct {
		index int
		value Scalar
		time  int64
	}{
		{0, 10, 0},
		{1, 90, 250},
		{2, 40, 0},
		{-1, 0, 0},
		{3, 0, 0},
	}

	for _, tt := range tests {
		if v := track.ValueAt(tt.index); v != tt.value {
			t.Errorf("ValueAt(%d): expected %v, got %v", tt.index, tt.value, v)
		}
		if tm := track.TimeAt(tt.index); tm != tt.time {
			t.Errorf("TimeAt(%d): expected %d, got %d", tt.index, tt.time, tm)
		}
	}
}

func TestTrackEdits(t *testing.T) {
	track := NewTrack[Color]("flash").
		AddKeyframe(0, RGB(0, 0, 0)).
		AddKeyframe(100, RGB(255, 0, 0))

	if !track.SetValue(1, RGB(0, 0, 255)) {
		t.Error("SetValue on a valid index failed")
	}
	if track.ValueAt(1) != RGB(0, 0, 255) {
		t.Errorf("Expected blue, got %+v", track.ValueAt(1))
	}
	if !track.SetTime(1, 400) {
		t.Error("SetTime on a valid index failed")
	}
	if track.Duration() != 400 {
		t.Errorf("Expected duration 400, got %d", track.Duration())
	}

	if track.SetValue(2, RGB(1, 2, 3)) {
		t.Error("SetValue out of range should fail")
	}
	if track.SetTime(-1, 10) {
		t.Error("SetTime out of range should fail")
	}
	if track.Count() != 2 || track.Duration() != 400 {
		t.Error("Failed edits should not change the track")
	}

	kfs := track.Keyframes()
	kfs[0].Time = 999
	if track.TimeAt(0) != 0 {
		t.Error("Keyframes should return a copy")
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog[Scalar]()

	if _, ok := c.Add(NewTrack[Scalar]("empty")); ok {
		t.Error("Empty track should be rejected")
	}
	if _, ok := c.Add(nil); ok {
		t.Error("Nil track should be rejected")
	}

	first := NewTrack[Scalar]("blink").AddKeyframe(0, 1)
	second := NewTrack[Scalar]("blink").AddKeyframe(0, 2)
	other := NewTrack[Scalar]("sweep").AddKeyframe(0, 3)

	id, ok := c.Add(first)
	if !ok {
		t.Fatal("First track should be accepted")
	}
	if _, ok := c.Add(second); ok {
		t.Error("Duplicate name should be ignored")
	}
	if _, ok := c.Add(other); !ok {
		t.Error("Second distinct track should be accepted")
	}

	if c.Len() != 2 {
		t.Errorf("Expected 2 tracks, got %d", c.Len())
	}
	if c.Resolve(id).ValueAt(0) != 1 {
		t.Error("First writer should win")
	}

	names := c.Names()
	if len(names) != 2 || names[0] != "blink" || names[1] != "sweep" {
		t.Errorf("Expected insertion order [blink sweep], got %v", names)
	}

	if c.Resolve(NoTrack) != nil || c.Resolve(TrackID(5)) != nil {
		t.Error("Unknown handles should resolve to nil")
	}
	if _, found := c.Find("missing"); found {
		t.Error("Find should fail for unknown names")
	}
}
