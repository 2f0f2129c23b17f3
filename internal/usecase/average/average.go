// Package average extracts the steady-state loop from a multi-cycle
// simulation by discarding transient startup cycles and averaging the rest.
package average

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

// Average drops the first discardCycles cycles and averages the remaining
// ones point by point. Samples are matched by phase index within the cycle,
// not by time value; all cycles share identical sample counts by
// construction, and that layout is verified before any arithmetic.
//
// At least 2 retained cycles are required.
func Average(samples []domain.LoopSample, discardCycles int) (domain.AveragedLoop, error) {
	if discardCycles < 0 {
		return domain.AveragedLoop{}, invalidErr(fmt.Sprintf("discard cycles must be non-negative (got %d)", discardCycles))
	}

	cycles, perCycle, err := layout(samples)
	if err != nil {
		return domain.AveragedLoop{}, err
	}

	retained := cycles - discardCycles
	if retained < 2 {
		return domain.AveragedLoop{}, &domain.OpError{
			Op:   "average",
			Kind: domain.KindInsufficientData,
			Err: fmt.Errorf("need at least 2 cycles after discarding %d of %d: %w",
				discardCycles, cycles, domain.ErrInsufficientData),
		}
	}

	sumH := make([]float64, perCycle)
	sumB := make([]float64, perCycle)
	h := make([]float64, perCycle)
	b := make([]float64, perCycle)

	for c := discardCycles; c < cycles; c++ {
		cycle := samples[c*perCycle : (c+1)*perCycle]
		for i, s := range cycle {
			h[i] = s.H
			b[i] = s.B
		}
		floats.Add(sumH, h)
		floats.Add(sumB, b)
	}
	floats.Scale(1/float64(retained), sumH)
	floats.Scale(1/float64(retained), sumB)

	points := make([]domain.LoopPoint, perCycle+1)
	for i := 0; i < perCycle; i++ {
		points[i] = domain.LoopPoint{H: sumH[i], B: sumB[i]}
	}
	points[perCycle] = points[0] // close the loop

	return domain.AveragedLoop{Points: points}, nil
}

// layout verifies the cycle/phase structure the engine guarantees: samples
// ordered by cycle, equal per-cycle counts, consecutive phase indexes.
func layout(samples []domain.LoopSample) (cycles, perCycle int, err error) {
	if len(samples) == 0 {
		return 0, 0, invalidErr("no samples")
	}

	perCycle = 0
	for _, s := range samples {
		if s.Cycle != 0 {
			break
		}
		perCycle++
	}
	if perCycle == 0 || len(samples)%perCycle != 0 {
		return 0, 0, invalidErr("samples are not grouped into equal cycles")
	}
	cycles = len(samples) / perCycle

	for idx, s := range samples {
		if s.Cycle != idx/perCycle || s.Phase != idx%perCycle {
			return 0, 0, invalidErr(fmt.Sprintf("sample %d out of phase order (cycle=%d phase=%d)", idx, s.Cycle, s.Phase))
		}
	}
	return cycles, perCycle, nil
}

func invalidErr(msg string) error {
	return &domain.OpError{
		Op:   "average",
		Kind: domain.KindInvalidParameter,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrInvalidParameter),
	}
}
