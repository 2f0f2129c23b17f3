package domain

import (
	"math"
	"testing"
)

func TestBuildWaveform_Sine(t *testing.T) {
	p := DefaultParams()
	p.SamplesPerCycle = 64

	w, err := BuildWaveform(p)
	if err != nil {
		t.Fatalf("BuildWaveform error: %v", err)
	}

	if len(w.Points) != 64 {
		t.Fatalf("expected 64 points, got %d", len(w.Points))
	}
	if math.Abs(w.Period-1/p.Frequency) > 1e-15 {
		t.Fatalf("expected period=%g, got %g", 1/p.Frequency, w.Period)
	}

	// Strictly increasing timestamps.
	for i := 1; i < len(w.Points); i++ {
		if w.Points[i].T <= w.Points[i-1].T {
			t.Fatalf("timestamps not strictly increasing at %d: %g <= %g", i, w.Points[i].T, w.Points[i-1].T)
		}
	}

	// Starts at zero, peaks at the quarter cycle.
	if w.Points[0].H != 0 {
		t.Fatalf("sine must start at H=0, got %g", w.Points[0].H)
	}
	if got := w.Points[16].H; math.Abs(got-p.Hmax) > 1e-9 {
		t.Fatalf("expected peak %g at quarter cycle, got %g", p.Hmax, got)
	}
}

func TestBuildWaveform_Triangle(t *testing.T) {
	p := DefaultParams()
	p.Shape = ShapeTriangle
	p.SamplesPerCycle = 16

	w, err := BuildWaveform(p)
	if err != nil {
		t.Fatalf("BuildWaveform error: %v", err)
	}

	if w.Points[0].H != 0 {
		t.Fatalf("triangle must start at H=0, got %g", w.Points[0].H)
	}
	if got := w.Points[4].H; math.Abs(got-p.Hmax) > 1e-9 {
		t.Fatalf("expected +Hmax at quarter cycle, got %g", got)
	}
	if got := w.Points[12].H; math.Abs(got+p.Hmax) > 1e-9 {
		t.Fatalf("expected -Hmax at three quarters, got %g", got)
	}
}

func TestBuildWaveform_Deterministic(t *testing.T) {
	p := DefaultParams()

	a, err := BuildWaveform(p)
	if err != nil {
		t.Fatalf("BuildWaveform error: %v", err)
	}
	b, err := BuildWaveform(p)
	if err != nil {
		t.Fatalf("BuildWaveform error: %v", err)
	}

	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("waveform not deterministic at %d: %+v vs %+v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestBuildWaveform_RejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Frequency = 0

	if _, err := BuildWaveform(p); !IsKind(err, KindInvalidParameter) {
		t.Fatalf("expected invalid_parameter, got %v", err)
	}
}
