package presets

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/keyframer/anim"
)

// Scintillate builds a colour track in which base flares up towards peak
// luminance and back, shaped by lut (see util.GenerateLut).
func Scintillate(name string, base colorful.Color, lut []float64, durationMs int64, peak float64) *anim.Track[anim.Color] {
	t := anim.NewTrack[anim.Color](name)
	if len(lut) < 2 {
		return t.AddKeyframe(0, anim.FromColorful(base))
	}

	h, c, l := base.Hcl()
	lumDiff := peak - l
	last := len(lut) - 1
	for i, gain := range lut {
		colour := colorful.Hcl(h, c, l+(lumDiff*gain)).Clamped()
		t.AddKeyframe(durationMs*int64(i)/int64(last), anim.FromColorful(colour))
	}
	return t
}

// Twinkle builds a scalar track of short random flashes over a dim glow.
// The same rng state always yields the same track.
func Twinkle(name string, rng *rand.Rand, flashes int, durationMs int64) *anim.Track[anim.Scalar] {
	const (
		glow     = 0.1
		flashMs  = 60
		settleMs = 120
	)

	t := anim.NewTrack[anim.Scalar](name).AddKeyframe(0, glow)
	if flashes < 1 || durationMs < int64(flashes)*(flashMs+settleMs) {
		return t.AddKeyframe(durationMs, glow)
	}

	slot := durationMs / int64(flashes)
	for i := 0; i < flashes; i++ {
		start := int64(i)*slot + rng.Int63n(slot-flashMs-settleMs+1)
		peak := 0.6 + 0.4*rng.Float64()
		t.AddKeyframe(start, glow).
			AddKeyframe(start+flashMs, anim.Scalar(peak)).
			AddKeyframe(start+flashMs+settleMs, glow)
	}
	return t.AddKeyframe(durationMs, glow)
}
