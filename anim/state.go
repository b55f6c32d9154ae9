package anim

import (
	"fmt"
	"strings"
)

// PlayMode decides what happens when playback reaches the end of a track.
type PlayMode int

// List of valid PlayMode values.
const (
	Once PlayMode = iota
	Loop
	Boomerang
)

func (m PlayMode) String() string {
	switch m {
	case Once:
		return "once"
	case Loop:
		return "loop"
	case Boomerang:
		return "boomerang"
	}
	return fmt.Sprintf("PlayMode(%d)", int(m))
}

// ParseMode converts a mode name (case insensitive) to a PlayMode. An empty
// name is Once.
func ParseMode(s string) (PlayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return Once, nil
	case "loop":
		return Loop, nil
	case "boomerang":
		return Boomerang, nil
	}
	return Once, fmt.Errorf("unknown play mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m PlayMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PlayMode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Phase of an Engine.
type Phase int

// List of valid Phase values.
const (
	Idle Phase = iota
	Playing
	Paused
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Direction of playback. Only Boomerang mode ever plays in Reverse.
type Direction int

// List of valid Direction values.
const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Snapshot is a read-only copy of an Engine's playback state.
type Snapshot[V any] struct {
	Track         string    `json:"track"`
	Mode          PlayMode  `json:"mode"`
	Phase         Phase     `json:"phase"`
	Direction     Direction `json:"direction"`
	Speed         float64   `json:"speed"`
	Current       int       `json:"current"`
	Next          int       `json:"next"`
	ElapsedMs     int64     `json:"elapsedMs"`
	PausedMs      int64     `json:"pausedMs"`
	Blending      bool      `json:"blending"`
	BlendTarget   string    `json:"blendTarget,omitempty"`
	BlendProgress float64   `json:"blendProgress"`
	NextKeyMs     int64     `json:"nextKeyMs"`
	RemainingMs   int64     `json:"remainingMs"`
	Value         V         `json:"value"`
}
