package util

import (
	"math"
	"testing"
)

func TestCurveByName(t *testing.T) {
	for _, name := range CurveNames() {
		c, found := CurveByName(name)
		if !found {
			t.Errorf("Listed curve %s not found", name)
			continue
		}
		if math.Abs(c(0)) > 1e-9 || math.Abs(c(1)-1) > 1e-9 {
			t.Errorf("Curve %s should run from 0 to 1, got %v..%v", name, c(0), c(1))
		}
	}

	if _, found := CurveByName("wobble"); found {
		t.Error("Unknown curve should not be found")
	}
}

func TestSampleCurve(t *testing.T) {
	linear, _ := CurveByName("linear")
	samples := SampleCurve(linear, 4)
	expected := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(samples) != len(expected) {
		t.Fatalf("Expected %d samples, got %d", len(expected), len(samples))
	}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("Sample %d: expected %v, got %v", i, expected[i], samples[i])
		}
	}

	if len(SampleCurve(linear, 0)) != 2 {
		t.Error("Steps below 1 should produce two samples")
	}
}

func TestGenerateLut(t *testing.T) {
	linear, _ := CurveByName("linear")

	lut := GenerateLut(5, linear)
	expected := []float64{0, 0.5, 1, 0.5, 0}
	for i := range expected {
		if lut[i] != expected[i] {
			t.Errorf("Odd LUT %d: expected %v, got %v", i, expected[i], lut[i])
		}
	}

	lut = GenerateLut(4, linear)
	expected = []float64{0, 0.5, 0.5, 0}
	for i := range expected {
		if lut[i] != expected[i] {
			t.Errorf("Even LUT %d: expected %v, got %v", i, expected[i], lut[i])
		}
	}

	if GenerateLut(0, linear) != nil {
		t.Error("Empty LUT should be nil")
	}
}
