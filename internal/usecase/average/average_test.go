package average

import (
	"math"
	"testing"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/usecase/simulate"
)

func simulated(t *testing.T, cycles int) []domain.LoopSample {
	t.Helper()
	p := domain.DefaultParams()
	p.Cycles = cycles

	w, err := domain.BuildWaveform(p)
	if err != nil {
		t.Fatalf("BuildWaveform error: %v", err)
	}
	samples, err := simulate.Simulate(p, w)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	return samples
}

func TestAverage_ClosedLoop(t *testing.T) {
	samples := simulated(t, 10)

	loop, err := Average(samples, 8)
	if err != nil {
		t.Fatalf("Average error: %v", err)
	}

	if len(loop.Points) != 256+1 {
		t.Fatalf("expected %d points, got %d", 257, len(loop.Points))
	}
	if !loop.Closed(1e-6) {
		first := loop.Points[0]
		last := loop.Points[len(loop.Points)-1]
		t.Fatalf("loop not closed: first=(%g,%g) last=(%g,%g)", first.H, first.B, last.H, last.B)
	}
}

func TestAverage_DiscardIdempotentAtSteadyState(t *testing.T) {
	samples := simulated(t, 8)

	base, err := Average(samples, 1)
	if err != nil {
		t.Fatalf("Average error: %v", err)
	}

	// Once the transient first cycle is gone, discarding more cycles
	// must not move the loop.
	for _, discard := range []int{2, 3, 4, 5, 6} {
		loop, err := Average(samples, discard)
		if err != nil {
			t.Fatalf("Average(discard=%d) error: %v", discard, err)
		}
		for i := range loop.Points {
			dH := math.Abs(loop.Points[i].H - base.Points[i].H)
			dB := math.Abs(loop.Points[i].B - base.Points[i].B)
			if dH > 1e-9 || dB > 1e-9 {
				t.Fatalf("discard=%d moved point %d by (%g,%g)", discard, i, dH, dB)
			}
		}
	}
}

func TestAverage_InsufficientData(t *testing.T) {
	samples := simulated(t, 4)

	cases := []struct {
		name    string
		discard int
	}{
		{"discard equals total", 4},
		{"discard exceeds total", 7},
		{"single retained cycle", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Average(samples, c.discard); !domain.IsKind(err, domain.KindInsufficientData) {
				t.Fatalf("expected insufficient_data, got %v", err)
			}
		})
	}
}

func TestAverage_RejectsNegativeDiscard(t *testing.T) {
	samples := simulated(t, 4)
	if _, err := Average(samples, -1); !domain.IsKind(err, domain.KindInvalidParameter) {
		t.Fatalf("expected invalid_parameter, got %v", err)
	}
}

func TestAverage_RejectsMisalignedSamples(t *testing.T) {
	samples := simulated(t, 4)

	t.Run("empty", func(t *testing.T) {
		if _, err := Average(nil, 0); !domain.IsKind(err, domain.KindInvalidParameter) {
			t.Fatalf("expected invalid_parameter, got %v", err)
		}
	})

	t.Run("truncated cycle", func(t *testing.T) {
		if _, err := Average(samples[:len(samples)-3], 0); !domain.IsKind(err, domain.KindInvalidParameter) {
			t.Fatalf("expected invalid_parameter, got %v", err)
		}
	})

	t.Run("scrambled phase", func(t *testing.T) {
		bad := make([]domain.LoopSample, len(samples))
		copy(bad, samples)
		bad[10], bad[11] = bad[11], bad[10]
		if _, err := Average(bad, 0); !domain.IsKind(err, domain.KindInvalidParameter) {
			t.Fatalf("expected invalid_parameter, got %v", err)
		}
	})
}

func TestAverage_MeanOfRetainedCycles(t *testing.T) {
	// Two hand-built cycles of 2 samples each; average is their midpoint.
	samples := []domain.LoopSample{
		{Cycle: 0, Phase: 0, H: 0, B: 0},
		{Cycle: 0, Phase: 1, H: 10, B: 1},
		{Cycle: 1, Phase: 0, H: 2, B: 0.2},
		{Cycle: 1, Phase: 1, H: 12, B: 1.2},
	}

	loop, err := Average(samples, 0)
	if err != nil {
		t.Fatalf("Average error: %v", err)
	}

	want := []domain.LoopPoint{{H: 1, B: 0.1}, {H: 11, B: 1.1}, {H: 1, B: 0.1}}
	if len(loop.Points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(loop.Points))
	}
	for i, pt := range loop.Points {
		if math.Abs(pt.H-want[i].H) > 1e-12 || math.Abs(pt.B-want[i].B) > 1e-12 {
			t.Fatalf("point %d = (%g,%g), want (%g,%g)", i, pt.H, pt.B, want[i].H, want[i].B)
		}
	}
}
