package presets

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/keyframer/anim"
)

// GradientTable stores a look-up table of hues against positions in [0, 1].
type GradientTable []struct {
	Hue float64
	Pos float64
}

// SpectrumTable walks the hue circle with extra room for the warm colours.
var SpectrumTable = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquoise
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, chroma, luminance float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c1.Hue, chroma, luminance)
			}
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, chroma, luminance)
		}
	}

	// At (or past) either end of the table.
	if t < g[0].Pos {
		return colorful.Hcl(g[0].Hue, chroma, luminance)
	}
	return colorful.Hcl(g[len(g)-1].Hue, chroma, luminance)
}

// HueGradient builds a colour track that follows a GradientTable over time.
func HueGradient(name string, g GradientTable, durationMs int64, steps int, chroma, luminance float64) *anim.Track[anim.Color] {
	if steps < 1 {
		steps = 1
	}
	t := anim.NewTrack[anim.Color](name)
	for i := 0; i <= steps; i++ {
		p := float64(i) / float64(steps)
		c := g.GetColor(p, chroma, luminance).Clamped()
		t.AddKeyframe(durationMs*int64(i)/int64(steps), anim.FromColorful(c))
	}
	return t
}
