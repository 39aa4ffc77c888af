package orbital

import (
	errorsmod "cosmossdk.io/errors"
)

// BehindSentinel is reported for samples excluded by the eclipse selector,
// i.e. when the companion is on the wrong side of the primary. It equals the
// default sweep threshold, so excluded samples stay unmasked only because the
// threshold test is strict; any threshold above 100 masks them.
const BehindSentinel = 100.0

// Eclipse selectors understood by Kepler through Aux.U1.
const (
	EclipsePrimary   = 1
	EclipseSecondary = 2
)

// Aux carries the two trailing constants of the separation routine. They are
// passed through untouched; DefaultAux matches the sweep's reference run.
type Aux struct {
	U1 float64 `json:"u1" yaml:"u1" mapstructure:"u1"`
	U2 float64 `json:"u2" yaml:"u2" mapstructure:"u2"`
}

// DefaultAux returns the (1, 1) pair used by the reference sweep.
func DefaultAux() Aux {
	return Aux{U1: 1, U2: 1}
}

// Separator computes the sky-projected separation of the two bodies at every
// time in times. Implementations must return a slice of len(times).
type Separator interface {
	Separation(times []float64, el Elements, aux Aux) ([]float64, error)
}

// SeparatorFunc adapts a plain function to Separator.
type SeparatorFunc func(times []float64, el Elements, aux Aux) ([]float64, error)

// Separation calls f.
func (f SeparatorFunc) Separation(times []float64, el Elements, aux Aux) ([]float64, error) {
	return f(times, el, aux)
}

// Kepler is the built-in Separator. It solves Kepler's equation per sample
// and projects the companion onto the sky plane.
//
// Aux.U1 selects the eclipse branch: EclipsePrimary keeps samples where the
// companion is in front of the primary, EclipseSecondary keeps those behind
// it, any other value keeps everything. Excluded samples report
// BehindSentinel. Aux.U2 is a thread hint for native implementations and is
// ignored here.
type Kepler struct{}

// Separation implements Separator.
func (Kepler) Separation(times []float64, el Elements, aux Aux) ([]float64, error) {
	if err := el.Validate(); err != nil {
		return nil, err
	}

	tp := el.PeriastronTime()
	out := make([]float64, len(times))

	for i, t := range times {
		f, err := el.TrueAnomaly(t, tp)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "t=%g", t)
		}

		pos := el.SkyPosition(f)
		switch {
		case aux.U1 == EclipsePrimary && !pos.InFront():
			out[i] = BehindSentinel
		case aux.U1 == EclipseSecondary && !pos.Behind():
			out[i] = BehindSentinel
		default:
			out[i] = pos.SkyDistance()
		}
	}

	return out, nil
}
