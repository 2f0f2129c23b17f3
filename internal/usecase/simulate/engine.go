// Package simulate implements Chan's piecewise empirical hysteresis model
// (Chan et al., IEEE Trans. CAD, 1991): a rational saturation curve evaluated
// on an ascending or descending branch, with the branch tracked as explicit
// state across the excitation waveform.
package simulate

import (
	"fmt"
	"math"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

const mu0 = 4 * math.Pi * 1e-7 // vacuum permeability, H/m

const (
	newtonTol     = 1e-12
	maxNewtonIter = 64

	// Hard cap on cycles × samples; the pipeline is sized for a few
	// thousand samples, not bulk sweeps.
	maxTotalSamples = 1 << 22
)

type branch int

const (
	branchInitial branch = iota
	branchAscending
	branchDescending
)

// model holds the fitted curves for one parameter set.
//
// The saturation function is B = Bs·x/(|x|+shape) with shape = Hc·(Bs/Br−1),
// where x = H+Hc on the descending branch and x = H−Hc on the ascending one.
// At H=0 the branches then pass through ±Br and they cross zero at ∓Hc,
// which is how the three material constants map onto the curve.
type model struct {
	bs    float64
	hc    float64
	shape float64
	k     float64 // gap shearing coefficient lg/(μ0·lm), (A/m)/T
}

func newModel(p domain.Params) model {
	m := model{
		bs:    p.Bs,
		hc:    p.Hc,
		shape: p.Hc * (p.Bs/p.Br - 1),
	}
	if p.GapLength > 0 {
		m.k = p.GapLength / (mu0 * p.PathLength)
	}
	return m
}

// branchAt evaluates Bs·x/(|x|+shape) and its derivative.
func (m model) branchAt(x float64) (float64, float64) {
	den := math.Abs(x) + m.shape
	return m.bs * x / den, m.bs * m.shape / (den * den)
}

// eval returns the raw branch curve and its slope at core field h.
// The initial magnetization curve is the mean of the two branches, so a run
// starting from the demagnetized state rises from the origin.
func (m model) eval(br branch, h float64) (float64, float64) {
	switch br {
	case branchDescending:
		return m.branchAt(h + m.hc)
	case branchAscending:
		return m.branchAt(h - m.hc)
	default:
		bu, du := m.branchAt(h + m.hc)
		bl, dl := m.branchAt(h - m.hc)
		return (bu + bl) / 2, (du + dl) / 2
	}
}

// solve finds B satisfying B = branch(H − k·B) + off.
//
// The k·B term is the series air-gap reluctance: the gap demagnetizes the
// core by B·lg/(μ0·lm), so the core sees less field than applied. Newton
// iteration handles the implicit equation; with k = 0 the first step lands
// exactly on the ungapped value, so gapped and ungapped share one code path.
func (m model) solve(br branch, h, off, guess float64) (float64, error) {
	b := guess
	for iter := 0; iter < maxNewtonIter; iter++ {
		raw, slope := m.eval(br, h-m.k*b)
		if !finite(raw) || !finite(slope) {
			return 0, divergeErr(fmt.Sprintf("saturation function not finite at H=%g", h))
		}

		step := (b - raw - off) / (1 + m.k*slope)
		b -= step
		if !finite(b) {
			return 0, divergeErr(fmt.Sprintf("field solution not finite at H=%g", h))
		}
		if math.Abs(step) <= newtonTol*(1+math.Abs(b)) {
			return b, nil
		}
	}
	return 0, divergeErr(fmt.Sprintf("gap correction did not converge at H=%g", h))
}

// Simulate integrates the excitation waveform sample by sample for the
// requested number of cycles and returns one LoopSample per waveform sample
// per cycle. Branch state, branch offset, and the last B carry across cycle
// boundaries, so later cycles converge onto the steady-state loop.
//
// Pure: no I/O, no process state. On any failure it returns no samples.
func Simulate(p domain.Params, w domain.Waveform) ([]domain.LoopSample, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkWaveform(p, w); err != nil {
		return nil, err
	}

	m := newModel(p)
	out := make([]domain.LoopSample, 0, p.Cycles*len(w.Points))

	br := branchInitial
	off := 0.0
	lastDir := 0
	var lastH, lastB float64
	started := false

	for c := 0; c < p.Cycles; c++ {
		for i, pt := range w.Points {
			h := pt.H

			if started {
				dir := sign(h - lastH)
				if dir != 0 && lastDir != 0 && dir != lastDir {
					// Field reversal: switch branch and shift it
					// vertically so B stays continuous. For a
					// periodic drive this settles into Chan's
					// tip-adjusted minor loop after the first
					// reversal.
					if dir > 0 {
						br = branchAscending
					} else {
						br = branchDescending
					}
					raw, _ := m.eval(br, lastH-m.k*lastB)
					off = lastB - raw
				}
				if dir != 0 {
					lastDir = dir
				}
			}

			b, err := m.solve(br, h, off, lastB)
			if err != nil {
				return nil, err
			}

			out = append(out, domain.LoopSample{
				Cycle: c,
				Phase: i,
				T:     float64(c)*w.Period + pt.T,
				H:     h,
				B:     b,
			})
			lastH, lastB = h, b
			started = true
		}
	}
	return out, nil
}

func checkWaveform(p domain.Params, w domain.Waveform) error {
	if len(w.Points) != p.SamplesPerCycle {
		return invalidErr(fmt.Sprintf("waveform has %d points, params expect %d per cycle", len(w.Points), p.SamplesPerCycle))
	}
	if w.Period <= 0 {
		return invalidErr(fmt.Sprintf("waveform period must be positive (got %g)", w.Period))
	}
	for i := 1; i < len(w.Points); i++ {
		if w.Points[i].T <= w.Points[i-1].T {
			return invalidErr(fmt.Sprintf("waveform timestamps must be strictly increasing (index %d)", i))
		}
	}
	if last := w.Points[len(w.Points)-1].T; last >= w.Period {
		return invalidErr(fmt.Sprintf("waveform timestamps must stay below the period (last=%g, period=%g)", last, w.Period))
	}
	if total := p.Cycles * len(w.Points); total > maxTotalSamples {
		return invalidErr(fmt.Sprintf("run of %d samples exceeds the supported size", total))
	}
	return nil
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func invalidErr(msg string) error {
	return &domain.OpError{
		Op:   "simulate",
		Kind: domain.KindInvalidParameter,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrInvalidParameter),
	}
}

func divergeErr(msg string) error {
	return &domain.OpError{
		Op:   "simulate",
		Kind: domain.KindDivergence,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrDivergence),
	}
}
