package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/keyframer/anim"
)

const slotMask = 0xffffff

// Frame holds one 24-bit slot per output, ready to stream to a receiver.
type Frame struct {
	slots []uint32
}

// NewFrame creates a Frame with n zeroed slots.
func NewFrame(n int) *Frame {
	f := new(Frame)
	f.slots = make([]uint32, n)
	return f
}

// Len is the number of slots.
func (f *Frame) Len() int {
	return len(f.slots)
}

// Set stores the low 24 bits of v in slot i. Out of range slots are ignored.
func (f *Frame) Set(i int, v uint32) {
	if i < 0 || i >= len(f.slots) {
		return
	}
	f.slots[i] = v & slotMask
}

// Slot returns the raw value of slot i, or 0 when out of range.
func (f *Frame) Slot(i int) uint32 {
	if i < 0 || i >= len(f.slots) {
		return 0
	}
	return f.slots[i]
}

// Int returns slot i as a signed 24-bit value.
func (f *Frame) Int(i int) int {
	v := int32(f.Slot(i) << 8)
	return int(v >> 8)
}

// Color returns slot i as a colour.
func (f *Frame) Color(i int) colorful.Color {
	return anim.Unpack(f.Slot(i)).Colorful()
}

// Clone copies the Frame.
func (f *Frame) Clone() *Frame {
	out := NewFrame(len(f.slots))
	copy(out.slots, f.slots)
	return out
}

// MarshalBinary converts a Frame into binary data: a little endian slot
// count followed by three big endian bytes per slot.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.slots) > 0xffff {
		return nil, fmt.Errorf("frame has %d slots, at most %d fit", len(f.slots), 0xffff)
	}
	data = make([]byte, 2, (len(f.slots)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.slots)))
	for _, s := range f.slots {
		data = append(data, byte(s>>16), byte(s>>8), byte(s))
	}

	return data, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("frame too short: %d bytes", len(data))
	}
	n := int(binary.LittleEndian.Uint16(data))
	if len(data) != 2+n*3 {
		return fmt.Errorf("frame of %d slots needs %d bytes, got %d", n, 2+n*3, len(data))
	}
	f.slots = make([]uint32, n)
	for i := range f.slots {
		p := data[2+i*3:]
		f.slots[i] = uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	}
	return nil
}

// levelSlot drives a single channel light through a frame slot.
type levelSlot struct {
	frame *Frame
	index int
}

func (s levelSlot) WriteLevel(level uint8) error {
	s.frame.Set(s.index, uint32(level))
	return nil
}

func (s levelSlot) WriteOn(on bool) error {
	if on {
		s.frame.Set(s.index, 255)
	} else {
		s.frame.Set(s.index, 0)
	}
	return nil
}
