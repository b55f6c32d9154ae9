package anim

import (
	"math"
)

// MinSpeed is the smallest playback speed. Requests for a lower speed,
// including zero, are raised to it.
const MinSpeed = 0.001

type blend[V any] struct {
	target   TrackID
	start    int64
	duration int64
	from     V
	mode     PlayMode
}

// Engine plays tracks from its catalog and produces a value for any point in
// time. It never reads a clock: every time dependent call takes the current
// time in milliseconds from the caller, which must never go backwards.
//
// An Engine is not safe for concurrent use.
type Engine[V Value[V]] struct {
	catalog *Catalog[V]

	active    TrackID
	mode      PlayMode
	phase     Phase
	direction Direction
	current   int
	next      int

	// startTime is fractional because speed changes rescale it.
	startTime    float64
	pauseTime    int64
	pausedBefore int64
	totalPaused  int64
	speed        float64

	value V

	blending bool
	blend    blend[V]
}

// NewEngine creates an idle Engine with an empty catalog.
func NewEngine[V Value[V]]() *Engine[V] {
	e := new(Engine[V])
	e.catalog = NewCatalog[V]()
	e.active = NoTrack
	e.speed = 1.0
	return e
}

// Register adds a track to the catalog. Empty tracks and duplicate names are
// ignored.
func (e *Engine[V]) Register(t *Track[V]) bool {
	_, ok := e.catalog.Add(t)
	return ok
}

// Lookup finds a registered track by name.
func (e *Engine[V]) Lookup(name string) (*Track[V], bool) {
	id, found := e.catalog.Find(name)
	if !found {
		return nil, false
	}
	return e.catalog.Resolve(id), true
}

// Tracks returns the names of the registered tracks in registration order.
func (e *Engine[V]) Tracks() []string {
	return e.catalog.Names()
}

// Play starts a track from its beginning, cancelling whatever was playing or
// blending. The track is found in the catalog by name and registered if it is
// not known yet. Returns false for an empty track.
func (e *Engine[V]) Play(now int64, t *Track[V], mode PlayMode) bool {
	id, ok := e.catalog.resolveOrAdd(t)
	if !ok {
		return false
	}
	e.start(now, id, mode)
	return true
}

// PlayNamed starts a registered track. Returns false, without changing any
// state, if no track of that name is registered.
func (e *Engine[V]) PlayNamed(now int64, name string, mode PlayMode) bool {
	id, found := e.catalog.Find(name)
	if !found {
		return false
	}
	e.start(now, id, mode)
	return true
}

func (e *Engine[V]) start(now int64, id TrackID, mode PlayMode) {
	e.Stop()

	track := e.catalog.Resolve(id)
	e.active = id
	e.mode = mode
	e.direction = Forward
	e.current = 0
	e.next = 0
	if track.Count() > 1 {
		e.next = 1
	}

	e.startTime = float64(now)
	e.pauseTime = 0
	e.pausedBefore = 0
	e.totalPaused = 0

	e.value = track.ValueAt(0)
	e.phase = Playing
}

// CrossfadeTo blends from the current value to the first keyframe of t over
// blendMs milliseconds, then plays t in the given mode. When nothing is
// playing it behaves like Play.
//
// The value blended from is captured once, when the blend starts.
func (e *Engine[V]) CrossfadeTo(now int64, t *Track[V], blendMs int64, mode PlayMode) bool {
	if t == nil || t.Count() == 0 {
		return false
	}
	if e.phase == Idle || e.phase == Completed {
		return e.Play(now, t, mode)
	}

	id, ok := e.catalog.resolveOrAdd(t)
	if !ok {
		return false
	}
	e.beginBlend(now, id, blendMs, mode)
	return true
}

// CrossfadeToNamed is CrossfadeTo for a registered track. Returns false if
// no track of that name is registered.
func (e *Engine[V]) CrossfadeToNamed(now int64, name string, blendMs int64, mode PlayMode) bool {
	id, found := e.catalog.Find(name)
	if !found {
		return false
	}
	if e.phase == Idle || e.phase == Completed {
		e.start(now, id, mode)
		return true
	}
	e.beginBlend(now, id, blendMs, mode)
	return true
}

func (e *Engine[V]) beginBlend(now int64, id TrackID, blendMs int64, mode PlayMode) {
	if blendMs < 0 {
		blendMs = 0
	}
	e.blending = true
	e.blend = blend[V]{
		target:   id,
		start:    now,
		duration: blendMs,
		from:     e.value,
		mode:     mode,
	}
}

// Sample advances playback to now and returns the value for that instant.
func (e *Engine[V]) Sample(now int64) V {
	switch e.phase {
	case Idle, Completed:
		return e.value
	case Paused:
		if now > e.pauseTime {
			e.totalPaused = e.pausedBefore + (now - e.pauseTime)
		}
		return e.value
	}

	if e.blending {
		return e.sampleBlend(now)
	}
	return e.sampleTrack(now)
}

func (e *Engine[V]) sampleBlend(now int64) V {
	elapsed := now - e.blend.start
	if elapsed < 0 {
		elapsed = 0
	}

	if elapsed >= e.blend.duration {
		e.start(now, e.blend.target, e.blend.mode)
		return e.value
	}

	target := e.catalog.Resolve(e.blend.target)
	t := float64(elapsed) / float64(e.blend.duration)
	e.value = e.blend.from.Lerp(target.ValueAt(0), t)
	return e.value
}

func (e *Engine[V]) sampleTrack(now int64) V {
	track := e.catalog.Resolve(e.active)
	n := track.Count()
	if n == 1 {
		e.value = track.ValueAt(0)
		return e.value
	}

	duration := track.Duration()
	effective := e.effectiveTime(float64(now), e.totalPaused)

	if effective >= float64(duration) {
		switch e.mode {
		case Loop, Boomerang:
			if duration <= 0 {
				e.current, e.next = n-1, n-1
				e.value = track.ValueAt(n - 1)
				return e.value
			}

			// Keep the phase within the new cycle so that irregular sampling
			// does not make the animation drift.
			cycles := math.Floor(effective / float64(duration))
			e.startTime += cycles * float64(duration) * e.speed
			effective = math.Max(0, effective-cycles*float64(duration))
			if e.mode == Boomerang && math.Mod(cycles, 2) == 1 {
				if e.direction == Forward {
					e.direction = Reverse
				} else {
					e.direction = Forward
				}
			}
			e.resetCursor(n)
		default:
			e.current, e.next = n-1, n-1
			e.value = track.ValueAt(n - 1)
			e.phase = Completed
			return e.value
		}
	}

	if e.direction == Forward {
		for e.next < n && effective >= float64(track.TimeAt(e.next)) {
			e.current = e.next
			e.next++
		}
		if e.next >= n {
			e.next = n - 1
			e.value = track.ValueAt(e.current)
			return e.value
		}
		e.value = interpolate(
			track.ValueAt(e.current), track.ValueAt(e.next),
			float64(track.TimeAt(e.current)), float64(track.TimeAt(e.next)),
			effective)
		return e.value
	}

	mirror := func(i int) float64 {
		return float64(duration - track.TimeAt(i))
	}
	for e.next >= 0 && effective >= mirror(e.next) {
		e.current = e.next
		e.next--
	}
	if e.next < 0 {
		e.next = 0
		e.value = track.ValueAt(e.current)
		return e.value
	}
	e.value = interpolate(
		track.ValueAt(e.current), track.ValueAt(e.next),
		mirror(e.current), mirror(e.next),
		effective)
	return e.value
}

func (e *Engine[V]) resetCursor(n int) {
	if e.direction == Reverse {
		e.current, e.next = n-1, n-2
		return
	}
	e.current, e.next = 0, 1
}

// interpolate returns the value at time at within the segment [start, end].
// A segment of zero (or negative) length yields its start value.
func interpolate[V Value[V]](from, to V, start, end, at float64) V {
	span := end - start
	if span <= 0 {
		return from
	}
	t := (at - start) / span
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return from.Lerp(to, t)
}

// effectiveTime is the position in the current cycle, in track time.
func (e *Engine[V]) effectiveTime(at float64, paused int64) float64 {
	raw := at - e.startTime - float64(paused)
	if raw < 0 {
		return 0
	}
	return raw / e.speed
}

// position is the effective time at now without advancing anything. A paused
// engine is frozen at the instant it was paused.
func (e *Engine[V]) position(now int64) float64 {
	if e.phase == Paused {
		return e.effectiveTime(float64(e.pauseTime), e.pausedBefore)
	}
	return e.effectiveTime(float64(now), e.totalPaused)
}

// Pause freezes a playing engine.
func (e *Engine[V]) Pause(now int64) {
	if e.phase != Playing {
		return
	}
	e.phase = Paused
	e.pauseTime = now
	e.totalPaused = e.pausedBefore
}

// Resume continues a paused engine as if the pause never happened.
func (e *Engine[V]) Resume(now int64) {
	if e.phase != Paused {
		return
	}

	interval := now - e.pauseTime
	if interval < 0 {
		interval = 0
	}
	e.pausedBefore += interval
	e.totalPaused = e.pausedBefore

	if e.blending {
		from := e.pauseTime
		if e.blend.start > from {
			from = e.blend.start
		}
		if shift := now - from; shift > 0 {
			e.blend.start += shift
		}
	}

	e.phase = Playing
}

// Stop returns the engine to Idle. The last value is kept.
func (e *Engine[V]) Stop() {
	e.phase = Idle
	e.active = NoTrack
	e.blending = false
	e.blend = blend[V]{}
	e.current = 0
	e.next = 0
}

// SetSpeed changes the playback speed. The current position in the track is
// kept, so the output does not jump.
func (e *Engine[V]) SetSpeed(now int64, speed float64) {
	if math.IsNaN(speed) || speed < MinSpeed {
		speed = MinSpeed
	}
	if speed == e.speed {
		return
	}

	switch e.phase {
	case Playing:
		pos := e.effectiveTime(float64(now), e.totalPaused)
		e.startTime = float64(now) - float64(e.totalPaused) - pos*speed
	case Paused:
		pos := e.effectiveTime(float64(e.pauseTime), e.pausedBefore)
		e.startTime = float64(e.pauseTime) - float64(e.pausedBefore) - pos*speed
	}

	e.speed = speed
}

// Speed returns the playback speed.
func (e *Engine[V]) Speed() float64 {
	return e.speed
}

// Value returns the last sampled value.
func (e *Engine[V]) Value() V {
	return e.value
}

// Phase returns the playback phase.
func (e *Engine[V]) Phase() Phase {
	return e.phase
}

// Mode returns the mode of the playing track.
func (e *Engine[V]) Mode() PlayMode {
	return e.mode
}

// Direction returns the playback direction.
func (e *Engine[V]) Direction() Direction {
	return e.direction
}

// IsPlaying is true while playing, including while blending.
func (e *Engine[V]) IsPlaying() bool {
	return e.phase == Playing
}

// IsPaused is true while paused.
func (e *Engine[V]) IsPaused() bool {
	return e.phase == Paused
}

// IsCompleted is true once a track played in Once mode has reached its end.
func (e *Engine[V]) IsCompleted() bool {
	return e.phase == Completed
}

// IsBlending is true while a crossfade is in progress.
func (e *Engine[V]) IsBlending() bool {
	return e.blending
}

// BlendProgress is how far the current crossfade has got, from 0 to 1.
func (e *Engine[V]) BlendProgress(now int64) float64 {
	if !e.blending {
		return 0
	}
	if e.blend.duration <= 0 {
		return 1
	}

	at := now
	if e.phase == Paused {
		at = e.pauseTime
		if e.blend.start > at {
			at = e.blend.start
		}
	}
	p := float64(at-e.blend.start) / float64(e.blend.duration)
	return math.Max(0, math.Min(1, p))
}

// CurrentName is the name of the active track, empty when idle.
func (e *Engine[V]) CurrentName() string {
	if track := e.catalog.Resolve(e.active); track != nil {
		return track.Name()
	}
	return ""
}

// TimeToNextKeyframe is the time, in milliseconds of real time, until
// playback reaches the next keyframe. While blending it is the time left in
// the blend.
func (e *Engine[V]) TimeToNextKeyframe(now int64) int64 {
	if e.phase != Playing {
		return 0
	}
	if e.blending {
		return e.blendRemaining(now)
	}

	track := e.catalog.Resolve(e.active)
	n := track.Count()
	if n <= 1 {
		return 0
	}

	duration := track.Duration()
	effective := e.position(now)
	if effective >= float64(duration) {
		return 0
	}

	keyTime := func(i int) float64 {
		if e.direction == Reverse {
			return float64(duration - track.TimeAt(i))
		}
		return float64(track.TimeAt(i))
	}

	// the cursor may lag behind now if Sample has not been called yet
	i := e.next
	step := 1
	if e.direction == Reverse {
		step = -1
	}
	for i >= 0 && i < n && effective >= keyTime(i) {
		i += step
	}
	if i < 0 || i >= n {
		return 0
	}

	return int64((keyTime(i) - effective) * e.speed)
}

// TimeRemaining is the time, in milliseconds of real time, until playback
// reaches the end of the track. For Loop and Boomerang it is the end of the
// current cycle. While blending it covers the rest of the blend and one run
// of the target track.
func (e *Engine[V]) TimeRemaining(now int64) int64 {
	if e.phase != Playing {
		return 0
	}
	if e.blending {
		target := e.catalog.Resolve(e.blend.target)
		return e.blendRemaining(now) + int64(float64(target.Duration())*e.speed)
	}

	track := e.catalog.Resolve(e.active)
	if track.Count() <= 1 {
		return 0
	}
	duration := float64(track.Duration())
	effective := e.position(now)

	if e.mode == Once {
		if effective >= duration {
			return 0
		}
		return int64((duration - effective) * e.speed)
	}

	if duration <= 0 {
		return 0
	}
	return int64((duration - math.Mod(effective, duration)) * e.speed)
}

func (e *Engine[V]) blendRemaining(now int64) int64 {
	left := e.blend.duration - (now - e.blend.start)
	if left < 0 {
		return 0
	}
	return left
}

// State returns a snapshot of the playback state at now. It does not
// advance playback.
func (e *Engine[V]) State(now int64) Snapshot[V] {
	s := Snapshot[V]{
		Track:     e.CurrentName(),
		Mode:      e.mode,
		Phase:     e.phase,
		Direction: e.direction,
		Speed:     e.speed,
		Current:   e.current,
		Next:      e.next,
		Blending:  e.blending,
		Value:     e.value,
	}

	if e.phase == Playing || e.phase == Paused {
		s.ElapsedMs = int64(e.position(now))
		s.PausedMs = e.totalPaused
		if e.phase == Paused && now > e.pauseTime {
			s.PausedMs = e.pausedBefore + (now - e.pauseTime)
		}
	}

	if e.blending {
		if target := e.catalog.Resolve(e.blend.target); target != nil {
			s.BlendTarget = target.Name()
		}
		s.BlendProgress = e.BlendProgress(now)
	}

	s.NextKeyMs = e.TimeToNextKeyframe(now)
	s.RemainingMs = e.TimeRemaining(now)
	return s
}
