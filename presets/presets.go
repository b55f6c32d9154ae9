// Package presets holds the built-in animations. Scalar tracks are
// normalised to [0, 1]; outputs scale them to angles or brightness.
package presets

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/keyframer/anim"
	"github.com/matt-g-everett/keyframer/util"
)

// Eased builds a track that follows curve from one value to another,
// approximated by steps linear segments.
func Eased(name string, from, to anim.Scalar, durationMs int64, curve util.Curve, steps int) *anim.Track[anim.Scalar] {
	t := anim.NewTrack[anim.Scalar](name)
	samples := util.SampleCurve(curve, steps)
	last := len(samples) - 1
	for i, s := range samples {
		at := durationMs * int64(i) / int64(last)
		t.AddKeyframe(at, from+(to-from)*anim.Scalar(s))
	}
	return t
}

// Pulse builds a track that rises through curve to 1 and falls back to 0.
func Pulse(name string, durationMs int64, curve util.Curve, length int) *anim.Track[anim.Scalar] {
	t := anim.NewTrack[anim.Scalar](name)
	lut := util.GenerateLut(length, curve)
	if len(lut) < 2 {
		return t.AddKeyframe(0, 0)
	}
	last := len(lut) - 1
	for i, v := range lut {
		t.AddKeyframe(durationMs*int64(i)/int64(last), anim.Scalar(v))
	}
	return t
}

// Gradient builds a colour track that blends from one colour to another in
// HCL space. Between keyframes the engine still blends linearly in RGB.
func Gradient(name string, from, to colorful.Color, durationMs int64, steps int) *anim.Track[anim.Color] {
	if steps < 1 {
		steps = 1
	}
	t := anim.NewTrack[anim.Color](name)
	for i := 0; i <= steps; i++ {
		p := float64(i) / float64(steps)
		t.AddKeyframe(durationMs*int64(i)/int64(steps), anim.FromColorful(from.BlendHcl(to, p)))
	}
	return t
}

// Hues builds a colour track that walks around the hue circle.
func Hues(name string, durationMs int64, steps int, saturation, value float64) *anim.Track[anim.Color] {
	if steps < 1 {
		steps = 1
	}
	t := anim.NewTrack[anim.Color](name)
	for i := 0; i <= steps; i++ {
		hue := 360.0 * float64(i) / float64(steps)
		if i == steps {
			hue = 0
		}
		t.AddKeyframe(durationMs*int64(i)/int64(steps), anim.FromColorful(colorful.Hsv(hue, saturation, value)))
	}
	return t
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func mustCurve(name string) util.Curve {
	c, found := util.CurveByName(name)
	if !found {
		panic("unknown curve " + name)
	}
	return c
}

// Scalars returns the built-in scalar tracks.
func Scalars() []*anim.Track[anim.Scalar] {
	blink := anim.NewTrack[anim.Scalar]("blink").
		AddKeyframe(0, 1).
		AddKeyframe(250, 1).
		AddKeyframe(250, 0).
		AddKeyframe(500, 0)

	nod := anim.NewTrack[anim.Scalar]("nod").
		AddKeyframe(0, 0.5).
		AddKeyframe(300, 0.8).
		AddKeyframe(900, 0.2).
		AddKeyframe(1200, 0.5)

	heartbeat := anim.NewTrack[anim.Scalar]("heartbeat").
		AddKeyframe(0, 0).
		AddKeyframe(100, 1).
		AddKeyframe(200, 0.2).
		AddKeyframe(300, 0.8).
		AddKeyframe(500, 0).
		AddKeyframe(1200, 0)

	return []*anim.Track[anim.Scalar]{
		Pulse("breathe", 3000, mustCurve("inOutSine"), 31),
		blink,
		Eased("sweep", 0, 1, 1000, mustCurve("linear"), 1),
		Eased("bounce", 0, 1, 1500, mustCurve("outBounce"), 30),
		nod,
		heartbeat,
		Twinkle("twinkle", rand.New(rand.NewSource(1)), 5, 4000),
		anim.NewTrack[anim.Scalar]("off").AddKeyframe(0, 0),
		anim.NewTrack[anim.Scalar]("on").AddKeyframe(0, 1),
	}
}

// Colors returns the built-in colour tracks.
func Colors() []*anim.Track[anim.Color] {
	alert := anim.NewTrack[anim.Color]("alert").
		AddKeyframe(0, anim.RGB(255, 0, 0)).
		AddKeyframe(200, anim.RGB(255, 0, 0)).
		AddKeyframe(200, anim.RGB(0, 0, 0)).
		AddKeyframe(400, anim.RGB(0, 0, 0))

	return []*anim.Track[anim.Color]{
		Hues("rainbow", 6000, 12, 1.0, 1.0),
		Gradient("sunrise", hex("#100505"), hex("#ffb347"), 8000, 8),
		Gradient("calm", hex("#000005"), hex("#204080"), 4000, 4),
		HueGradient("spectrum", SpectrumTable, 10000, 20, 1.0, 0.5),
		Scintillate("scintillate", hex("#000005"), util.GenerateLut(24, mustCurve("inOutSine")), 2000, 0.6),
		alert,
		anim.NewTrack[anim.Color]("off").AddKeyframe(0, anim.RGB(0, 0, 0)),
		anim.NewTrack[anim.Color]("white").AddKeyframe(0, anim.RGB(255, 255, 255)),
	}
}
