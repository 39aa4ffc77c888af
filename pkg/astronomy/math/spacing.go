package math

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced samples over [lo, hi], endpoints included.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Logspace returns n samples over [lo, hi] evenly spaced in log. Both bounds
// must be positive.
func Logspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{lo}
	}
	return floats.LogSpan(make([]float64, n), lo, hi)
}

// Arccos applies math.Acos element-wise and returns a new slice.
func Arccos(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Acos(v)
	}
	return out
}
