package domain

import (
	"fmt"
	"strings"
)

// WaveShape selects the excitation waveform driving the core.
type WaveShape string

const (
	ShapeSine     WaveShape = "sine"
	ShapeTriangle WaveShape = "triangle"
)

// ParseWaveShape maps a user-supplied string onto a known shape.
func ParseWaveShape(s string) (WaveShape, error) {
	switch WaveShape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeSine:
		return ShapeSine, nil
	case ShapeTriangle:
		return ShapeTriangle, nil
	default:
		return "", fmt.Errorf("unsupported wave shape %q (expected sine|triangle): %w", s, ErrInvalidParameter)
	}
}

// Params is the full material/geometry/excitation description of one
// simulation run. Immutable once a run starts.
type Params struct {
	Bs float64 // saturation flux density, T
	Br float64 // remanence, T
	Hc float64 // coercivity, A/m

	Hmax      float64 // excitation field amplitude, A/m
	Frequency float64 // excitation frequency, Hz
	Shape     WaveShape

	SamplesPerCycle int
	Cycles          int
	DiscardCycles   int // transient startup cycles dropped by the averager

	GapLength    float64 // air gap length, m; 0 selects the ungapped core
	PathLength   float64 // magnetic path length, m
	CrossSection float64 // core cross-section, m²
	Turns        int
}

// DefaultParams are the built-in first-run values: a generic soft ferrite
// driven well below saturation at mains-ish frequency.
func DefaultParams() Params {
	return Params{
		Bs:              1.5,
		Br:              0.3,
		Hc:              50,
		Hmax:            100,
		Frequency:       50,
		Shape:           ShapeSine,
		SamplesPerCycle: 256,
		Cycles:          10,
		DiscardCycles:   8,
		GapLength:       0,
		PathLength:      0.1,
		CrossSection:    1e-4,
		Turns:           100,
	}
}

// Validate checks every invariant the engine relies on. It is the single
// gate: callers never reach the numeric core with bad parameters.
func (p Params) Validate() error {
	checks := []struct {
		bad bool
		msg string
	}{
		{p.Bs <= 0, fmt.Sprintf("saturation flux density must be positive (got %g T)", p.Bs)},
		{p.Br <= 0, fmt.Sprintf("remanence must be positive (got %g T)", p.Br)},
		{p.Bs > 0 && p.Br > 0 && p.Bs <= p.Br, fmt.Sprintf("saturation (%g T) must exceed remanence (%g T)", p.Bs, p.Br)},
		{p.Hc <= 0, fmt.Sprintf("coercivity must be positive (got %g A/m)", p.Hc)},
		{p.Hmax <= 0, fmt.Sprintf("field amplitude must be positive (got %g A/m)", p.Hmax)},
		{p.Frequency <= 0, fmt.Sprintf("frequency must be positive (got %g Hz)", p.Frequency)},
		{p.Shape != ShapeSine && p.Shape != ShapeTriangle, fmt.Sprintf("unsupported wave shape %q", p.Shape)},
		{p.SamplesPerCycle < 8, fmt.Sprintf("samples per cycle must be at least 8 (got %d)", p.SamplesPerCycle)},
		{p.Cycles < 1, fmt.Sprintf("cycle count must be at least 1 (got %d)", p.Cycles)},
		{p.DiscardCycles < 0, fmt.Sprintf("discard cycles must be non-negative (got %d)", p.DiscardCycles)},
		{p.GapLength < 0, fmt.Sprintf("gap length must be non-negative (got %g m)", p.GapLength)},
		{p.PathLength <= 0, fmt.Sprintf("magnetic path length must be positive (got %g m)", p.PathLength)},
		{p.CrossSection <= 0, fmt.Sprintf("core cross-section must be positive (got %g m²)", p.CrossSection)},
		{p.Turns < 1, fmt.Sprintf("turn count must be at least 1 (got %d)", p.Turns)},
	}

	for _, c := range checks {
		if c.bad {
			return &OpError{
				Op:   "params.validate",
				Kind: KindInvalidParameter,
				Err:  fmt.Errorf("%s: %w", c.msg, ErrInvalidParameter),
			}
		}
	}
	return nil
}
