package orbital

import (
	"fmt"
	"math"

	errorsmod "cosmossdk.io/errors"

	astromath "github.com/oxygene76/rskygrid/pkg/astronomy/math"
)

const (
	// circularLimit is the eccentricity below which the orbit is treated as circular.
	circularLimit = 1.0e-5

	keplerTolerance     = 1e-10
	keplerMaxIterations = 100
)

// Elements are the Keplerian elements of the companion relative to the primary.
// T0 is the time of inferior conjunction (mid-transit), A is in units of the
// primary radius and the angles are in radians.
type Elements struct {
	T0     float64 `json:"t0"`
	Period float64 `json:"period"`
	A      float64 `json:"a"`
	Incl   float64 `json:"incl"`
	E      float64 `json:"e"`
	Omega  float64 `json:"omega"`
}

// Validate rejects elements the Kepler solver cannot handle.
func (el Elements) Validate() error {
	for name, v := range map[string]float64{
		"t0": el.T0, "period": el.Period, "a": el.A,
		"incl": el.Incl, "e": el.E, "omega": el.Omega,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errorsmod.Wrapf(ErrDegenerateOrbit, "%s is not finite", name)
		}
	}
	if el.E < 0 || el.E >= 1 {
		return errorsmod.Wrapf(ErrDegenerateOrbit, "eccentricity %g outside [0, 1)", el.E)
	}
	if el.Period <= 0 {
		return errorsmod.Wrapf(ErrDegenerateOrbit, "period %g must be positive", el.Period)
	}
	if el.A <= 0 {
		return errorsmod.Wrapf(ErrDegenerateOrbit, "semi-major axis %g must be positive", el.A)
	}
	return nil
}

// IsCircular reports whether the circular branch of the solver applies.
func (el Elements) IsCircular() bool {
	return el.E < circularLimit
}

// PeriastronTime returns the time of periastron passage implied by T0. For
// circular orbits ω still fixes where the companion sits at T0.
func (el Elements) PeriastronTime() float64 {
	// True anomaly at mid-transit.
	f := math.Pi/2 - el.Omega
	E := 2 * math.Atan2(math.Sqrt(1-el.E)*math.Sin(f/2), math.Sqrt(1+el.E)*math.Cos(f/2))
	M := E - el.E*math.Sin(E)
	return el.T0 - el.Period*M/(2*math.Pi)
}

// TrueAnomaly returns the true anomaly at time t given the periastron time tp.
func (el Elements) TrueAnomaly(t, tp float64) (float64, error) {
	phase := (t - tp) / el.Period
	if el.IsCircular() {
		return math.Mod(phase, 1) * 2 * math.Pi, nil
	}
	E, err := SolveKepler(2*math.Pi*phase, el.E)
	if err != nil {
		return 0, err
	}
	return 2 * math.Atan2(
		math.Sqrt(1+el.E)*math.Sin(E/2),
		math.Sqrt(1-el.E)*math.Cos(E/2),
	), nil
}

// Radius returns the orbital distance at true anomaly f.
func (el Elements) Radius(f float64) float64 {
	if el.IsCircular() {
		return el.A
	}
	return el.A * (1 - el.E*el.E) / (1 + el.E*math.Cos(f))
}

// SkyPosition places the companion in the sky frame at true anomaly f.
func (el Elements) SkyPosition(f float64) astromath.Vector3 {
	r := el.Radius(f)
	u := el.Omega + f
	return astromath.Vector3{
		X: -r * math.Cos(u),
		Y: -r * math.Sin(u) * math.Cos(el.Incl),
		Z: r * math.Sin(u) * math.Sin(el.Incl),
	}
}

// SolveKepler solves M = E - e*sin(E) for the eccentric anomaly E using
// Newton-Raphson. The result lies in the same 2π branch as M.
func SolveKepler(M, e float64) (float64, error) {
	if e < 0 || e >= 1 {
		return 0, errorsmod.Wrapf(ErrDegenerateOrbit, "eccentricity %g outside [0, 1)", e)
	}

	// Reduce to [-π, π] and restore the branch afterwards.
	reduced := math.Remainder(M, 2*math.Pi)
	offset := M - reduced

	// Danby's starting value.
	E := reduced + 0.85*e*sign(math.Sin(reduced))

	for i := 0; i < keplerMaxIterations; i++ {
		f := E - e*math.Sin(E) - reduced
		fp := 1 - e*math.Cos(E)

		deltaE := f / fp
		E -= deltaE

		if math.Abs(deltaE) < keplerTolerance {
			return E + offset, nil
		}
	}

	return 0, errorsmod.Wrap(ErrNonConvergence, fmt.Sprintf("M=%g e=%g", M, e))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
