package stream

import (
	"bytes"
	"testing"
)

func TestFrameMarshalBinary(t *testing.T) {
	f := NewFrame(3)
	f.Set(0, 90)
	f.Set(1, 0x123456)
	f.Set(2, 0xff010203)
	f.Set(3, 1)

	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []byte{3, 0, 0, 0, 90, 0x12, 0x34, 0x56, 0x01, 0x02, 0x03}
	if !bytes.Equal(data, want) {
		t.Errorf("Expected %v, got %v", want, data)
	}

	var g Frame
	if err := g.UnmarshalBinary(data); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Len() != 3 || g.Slot(1) != 0x123456 {
		t.Errorf("Decoded frame differs: %v", g.slots)
	}
}

func TestFrameUnmarshalBinaryErrors(t *testing.T) {
	var f Frame
	if err := f.UnmarshalBinary([]byte{1}); err == nil {
		t.Error("Expected an error for a truncated header")
	}
	if err := f.UnmarshalBinary([]byte{2, 0, 1, 2, 3}); err == nil {
		t.Error("Expected an error for missing slots")
	}
}

func TestFrameSlots(t *testing.T) {
	f := NewFrame(2)
	neg := int32(-15)
	f.Set(0, uint32(neg))
	if f.Int(0) != -15 {
		t.Errorf("Expected -15, got %d", f.Int(0))
	}
	if f.Slot(5) != 0 || f.Slot(-1) != 0 {
		t.Error("Out of range slots should read as 0")
	}

	f.Set(1, 0xff8000)
	r, g, b := f.Color(1).RGB255()
	if r != 0xff || g != 0x80 || b != 0 {
		t.Errorf("Unexpected colour %d %d %d", r, g, b)
	}

	c := f.Clone()
	f.Set(1, 0)
	if c.Slot(1) != 0xff8000 {
		t.Error("Clone should not share slots")
	}

	s := levelSlot{frame: f, index: 1}
	s.WriteOn(true)
	if f.Slot(1) != 255 {
		t.Errorf("Expected 255 when on, got %d", f.Slot(1))
	}
	s.WriteLevel(12)
	if f.Slot(1) != 12 {
		t.Errorf("Expected 12, got %d", f.Slot(1))
	}
}
