package orbital

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveKepler_SatisfiesEquation(t *testing.T) {
	for _, e := range []float64{0, 0.1, 0.45, 0.675, 0.9, 0.99} {
		for _, M := range []float64{-20, -math.Pi, -1, 0, 0.3, 2, math.Pi, 7.5, 40} {
			E, err := SolveKepler(M, e)
			require.NoError(t, err, "M=%g e=%g", M, e)
			assert.InDelta(t, M, E-e*math.Sin(E), 1e-9, "M=%g e=%g", M, e)
		}
	}
}

func TestSolveKepler_Circular(t *testing.T) {
	E, err := SolveKepler(1.25, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, E, 1e-12)
}

func TestSolveKepler_RejectsUnbound(t *testing.T) {
	_, err := SolveKepler(1, 1)
	assert.ErrorIs(t, err, ErrDegenerateOrbit)

	_, err = SolveKepler(1, -0.1)
	assert.ErrorIs(t, err, ErrDegenerateOrbit)
}

func TestElements_Validate(t *testing.T) {
	good := Elements{T0: 0, Period: 10, A: 50, Incl: 1, E: 0.3, Omega: 0.2}
	require.NoError(t, good.Validate())

	tests := []struct {
		name   string
		mutate func(*Elements)
	}{
		{"eccentricity one", func(el *Elements) { el.E = 1 }},
		{"hyperbolic", func(el *Elements) { el.E = 1.5 }},
		{"negative eccentricity", func(el *Elements) { el.E = -0.01 }},
		{"zero period", func(el *Elements) { el.Period = 0 }},
		{"negative a", func(el *Elements) { el.A = -1 }},
		{"nan omega", func(el *Elements) { el.Omega = math.NaN() }},
		{"infinite t0", func(el *Elements) { el.T0 = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := good
			tt.mutate(&el)
			assert.ErrorIs(t, el.Validate(), ErrDegenerateOrbit)
		})
	}
}

func TestElements_TrueAnomalyAtTransit(t *testing.T) {
	for _, e := range []float64{0, 0.5} {
		for _, omega := range []float64{-math.Pi, 0, 0.3, math.Pi} {
			el := Elements{T0: 3, Period: 12, A: 20, Incl: 1.2, E: e, Omega: omega}

			f, err := el.TrueAnomaly(el.T0, el.PeriastronTime())
			require.NoError(t, err, "e=%g omega=%g", e, omega)

			// Mid-transit places the companion at ω+f = π/2.
			assert.InDelta(t, 0, math.Remainder(el.Omega+f-math.Pi/2, 2*math.Pi), 1e-8, "e=%g omega=%g", e, omega)
		}
	}
}

func TestElements_SkyPosition(t *testing.T) {
	el := Elements{A: 10, Incl: math.Pi / 2, E: 0, Omega: 0}

	front := el.SkyPosition(math.Pi / 2)
	assert.InDelta(t, 0, front.SkyDistance(), 1e-9)
	assert.InDelta(t, 10, front.Z, 1e-9)

	quadrature := el.SkyPosition(0)
	assert.InDelta(t, 10, quadrature.SkyDistance(), 1e-9)
	assert.InDelta(t, 0, quadrature.Z, 1e-9)
}

func TestElements_Radius(t *testing.T) {
	el := Elements{A: 10, E: 0.5}
	assert.InDelta(t, 5, el.Radius(0), 1e-12)
	assert.InDelta(t, 15, el.Radius(math.Pi), 1e-12)

	circular := Elements{A: 10, E: 0}
	assert.Equal(t, 10.0, circular.Radius(1.7))
}
