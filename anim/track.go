package anim

// Keyframe is a value reached at a point in time, in milliseconds since the
// start of the animation.
type Keyframe[V any] struct {
	Time  int64
	Value V
}

// A Track is a named sequence of keyframes. Keyframes are kept in the order
// they were added; that order is the playback order.
type Track[V any] struct {
	name      string
	keyframes []Keyframe[V]
}

// NewTrack creates an empty Track.
func NewTrack[V any](name string) *Track[V] {
	t := new(Track[V])
	t.name = name
	return t
}

// AddKeyframe appends a keyframe. Negative times are treated as 0.
func (t *Track[V]) AddKeyframe(timeMs int64, value V) *Track[V] {
	if timeMs < 0 {
		timeMs = 0
	}
	t.keyframes = append(t.keyframes, Keyframe[V]{Time: timeMs, Value: value})
	return t
}

func (t *Track[V]) inRange(index int) bool {
	return index >= 0 && index < len(t.keyframes)
}

// SetValue replaces the value of an existing keyframe.
func (t *Track[V]) SetValue(index int, value V) bool {
	if !t.inRange(index) {
		return false
	}
	t.keyframes[index].Value = value
	return true
}

// SetTime replaces the time of an existing keyframe.
func (t *Track[V]) SetTime(index int, timeMs int64) bool {
	if !t.inRange(index) {
		return false
	}
	if timeMs < 0 {
		timeMs = 0
	}
	t.keyframes[index].Time = timeMs
	return true
}

// Count returns the number of keyframes.
func (t *Track[V]) Count() int {
	return len(t.keyframes)
}

// Name returns the name the track was created with.
func (t *Track[V]) Name() string {
	return t.name
}

// ValueAt returns the value of a keyframe, or the zero value when index is
// out of range.
func (t *Track[V]) ValueAt(index int) V {
	if !t.inRange(index) {
		var zero V
		return zero
	}
	return t.keyframes[index].Value
}

// TimeAt returns the time of a keyframe, or 0 when index is out of range.
func (t *Track[V]) TimeAt(index int) int64 {
	if !t.inRange(index) {
		return 0
	}
	return t.keyframes[index].Time
}

// Duration is the time of the last keyframe.
func (t *Track[V]) Duration() int64 {
	return t.TimeAt(len(t.keyframes) - 1)
}

// Keyframes returns a copy of the keyframes.
func (t *Track[V]) Keyframes() []Keyframe[V] {
	out := make([]Keyframe[V], len(t.keyframes))
	copy(out, t.keyframes)
	return out
}
