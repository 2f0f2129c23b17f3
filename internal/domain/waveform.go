package domain

import "math"

// WaveformPoint is one sample of the applied field within a cycle.
type WaveformPoint struct {
	T float64 // seconds from cycle start
	H float64 // A/m
}

// Waveform is one full excitation cycle, derived deterministically from the
// amplitude/frequency/shape parameters. The engine replays it per cycle.
type Waveform struct {
	Points []WaveformPoint
	Period float64 // seconds
}

// BuildWaveform samples one cycle of the configured shape. Timestamps are
// strictly increasing by construction.
func BuildWaveform(p Params) (Waveform, error) {
	if err := p.Validate(); err != nil {
		return Waveform{}, err
	}

	n := p.SamplesPerCycle
	period := 1 / p.Frequency
	dt := period / float64(n)

	w := Waveform{
		Points: make([]WaveformPoint, n),
		Period: period,
	}
	for i := 0; i < n; i++ {
		phase := float64(i) / float64(n)
		w.Points[i] = WaveformPoint{
			T: float64(i) * dt,
			H: p.Hmax * shapeValue(p.Shape, phase),
		}
	}
	return w, nil
}

// shapeValue evaluates the normalized excitation at phase in [0,1).
// Both shapes start at zero and rise, so a run begins on the initial
// magnetization curve like the physical experiment.
func shapeValue(shape WaveShape, phase float64) float64 {
	switch shape {
	case ShapeTriangle:
		// 0 -> 1 -> -1 -> 0, the linear field scan of the classic
		// BH-loop tracing setup.
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
