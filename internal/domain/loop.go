package domain

import "math"

// LoopSample is one computed (H, B) pair with its position in the run.
type LoopSample struct {
	Cycle int     // 0-based cycle index
	Phase int     // sample position within the cycle
	T     float64 // seconds from run start
	H     float64 // A/m
	B     float64 // T
}

// LoopPoint is one point of a steady-state loop.
type LoopPoint struct {
	H float64 // A/m
	B float64 // T
}

// AveragedLoop is the steady-state closed B-H curve obtained by averaging
// phase-aligned samples across the retained cycles. The first point is
// re-appended as the last, so the curve is explicitly closed.
type AveragedLoop struct {
	Points []LoopPoint
}

// Closed reports whether first and last point coincide within tol.
func (l AveragedLoop) Closed(tol float64) bool {
	if len(l.Points) < 2 {
		return false
	}
	first := l.Points[0]
	last := l.Points[len(l.Points)-1]
	return math.Abs(first.H-last.H) <= tol && math.Abs(first.B-last.B) <= tol
}

// MaxB returns the largest |B| on the loop.
func (l AveragedLoop) MaxB() float64 {
	max := 0.0
	for _, pt := range l.Points {
		if a := math.Abs(pt.B); a > max {
			max = a
		}
	}
	return max
}

// Area returns the enclosed loop area |∮ H dB| via the shoelace formula.
// Physically this is the hysteresis energy dissipated per cycle and unit
// volume, J/m³.
func (l AveragedLoop) Area() float64 {
	if len(l.Points) < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(l.Points)-1; i++ {
		a, b := l.Points[i], l.Points[i+1]
		sum += a.H*b.B - b.H*a.B
	}
	// The stored loop is closed, but guard against an open tail anyway.
	first, last := l.Points[0], l.Points[len(l.Points)-1]
	sum += last.H*first.B - first.H*last.B
	return math.Abs(sum) / 2
}
