// Package grid builds the flattened cartesian product of the six orbital
// parameter axes swept by rskygrid.
package grid

import (
	"fmt"
	"math"
	"strings"

	errorsmod "cosmossdk.io/errors"

	astromath "github.com/oxygene76/rskygrid/pkg/astronomy/math"
	"github.com/oxygene76/rskygrid/pkg/astronomy/orbital"
)

// Axis names, in the order Build expects them.
const (
	AxisT0     = "t0"
	AxisPeriod = "period"
	AxisA      = "a"
	AxisE      = "e"
	AxisOmega  = "omega"
	AxisIncl   = "incl"
)

// AxisOrder is the required order of the axes passed to Build.
var AxisOrder = []string{AxisT0, AxisPeriod, AxisA, AxisE, AxisOmega, AxisIncl}

// Indexing controls how the cartesian product is flattened.
type Indexing string

const (
	// IndexingIJ flattens row-major in AxisOrder; incl varies fastest.
	IndexingIJ Indexing = "ij"
	// IndexingXY uses Cartesian meshgrid ordering: the first two axes are
	// swapped before flattening, so period varies slowest.
	IndexingXY Indexing = "xy"
)

// ParseIndexing maps a config string to an Indexing. Empty means IndexingIJ.
func ParseIndexing(s string) (Indexing, error) {
	switch Indexing(strings.ToLower(strings.TrimSpace(s))) {
	case "", IndexingIJ:
		return IndexingIJ, nil
	case IndexingXY:
		return IndexingXY, nil
	}
	return "", errorsmod.Wrapf(orbital.ErrInvalidGrid, "unknown indexing %q", s)
}

// Axis is one dimension of the parameter grid.
type Axis struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// DefaultAxes returns the reference sweep: 2×3×2×5×3×4 = 720 grid points.
func DefaultAxes() []Axis {
	return []Axis{
		{Name: AxisT0, Values: astromath.Linspace(-5.0, 5.0, 2)},
		{Name: AxisPeriod, Values: astromath.Logspace(5.0, 50.0, 3)},
		{Name: AxisA, Values: astromath.Linspace(50.0, 100.0, 2)},
		{Name: AxisE, Values: astromath.Linspace(0.0, 0.9, 5)},
		{Name: AxisOmega, Values: astromath.Linspace(-math.Pi, math.Pi, 3)},
		{Name: AxisIncl, Values: InclinationAxis(5)},
	}
}

// InclinationAxis samples cos(incl) evenly over [0, 1] with n points and drops
// the last sample, so the result holds n-1 inclinations in (0, π/2].
func InclinationAxis(n int) []float64 {
	cos := astromath.Linspace(0, 1, n)
	if len(cos) == 0 {
		return cos
	}
	return astromath.Arccos(cos[:len(cos)-1])
}

// Grid holds the flattened parameter sequences. Index i across all six
// slices is one grid point.
type Grid struct {
	T0     []float64
	Period []float64
	A      []float64
	E      []float64
	Omega  []float64
	Incl   []float64

	axes     []Axis
	indexing Indexing
}

// Build expands axes into their flattened cartesian product.
func Build(axes []Axis, indexing Indexing) (*Grid, error) {
	if len(axes) != len(AxisOrder) {
		return nil, errorsmod.Wrapf(orbital.ErrInvalidGrid, "expected %d axes, got %d", len(AxisOrder), len(axes))
	}
	for i, ax := range axes {
		if ax.Name != AxisOrder[i] {
			return nil, errorsmod.Wrapf(orbital.ErrInvalidGrid, "axis %d is %q, expected %q", i, ax.Name, AxisOrder[i])
		}
		if len(ax.Values) == 0 {
			return nil, errorsmod.Wrapf(orbital.ErrInvalidGrid, "axis %q is empty", ax.Name)
		}
	}

	// Flattening order: the loop nest below walks order[0] slowest.
	order := []int{0, 1, 2, 3, 4, 5}
	switch indexing {
	case IndexingIJ, "":
		indexing = IndexingIJ
	case IndexingXY:
		order[0], order[1] = 1, 0
	default:
		return nil, errorsmod.Wrapf(orbital.ErrInvalidGrid, "unknown indexing %q", indexing)
	}

	total := 1
	for _, ax := range axes {
		total *= len(ax.Values)
	}

	g := &Grid{
		axes:     cloneAxes(axes),
		indexing: indexing,
	}
	cols := make([][]float64, len(axes))
	for i := range cols {
		cols[i] = make([]float64, total)
	}

	// Mixed-radix counter over the axes in flattening order.
	idx := make([]int, len(axes))
	for p := 0; p < total; p++ {
		for k := range axes {
			cols[k][p] = axes[k].Values[idx[k]]
		}
		for j := len(order) - 1; j >= 0; j-- {
			k := order[j]
			idx[k]++
			if idx[k] < len(axes[k].Values) {
				break
			}
			idx[k] = 0
		}
	}

	g.T0, g.Period, g.A, g.E, g.Omega, g.Incl = cols[0], cols[1], cols[2], cols[3], cols[4], cols[5]
	return g, nil
}

// Default builds the reference 720-point grid.
func Default() *Grid {
	g, err := Build(DefaultAxes(), IndexingIJ)
	if err != nil {
		panic(fmt.Sprintf("default grid: %v", err))
	}
	return g
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.T0)
}

// Shape returns the per-axis lengths in AxisOrder.
func (g *Grid) Shape() []int {
	shape := make([]int, len(g.axes))
	for i, ax := range g.axes {
		shape[i] = len(ax.Values)
	}
	return shape
}

// Axes returns a copy of the axes the grid was built from.
func (g *Grid) Axes() []Axis {
	return cloneAxes(g.axes)
}

// Indexing returns the flattening order used by Build.
func (g *Grid) Indexing() Indexing {
	return g.indexing
}

// Point returns grid point i as orbital elements.
func (g *Grid) Point(i int) orbital.Elements {
	return orbital.Elements{
		T0:     g.T0[i],
		Period: g.Period[i],
		A:      g.A[i],
		Incl:   g.Incl[i],
		E:      g.E[i],
		Omega:  g.Omega[i],
	}
}

func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	for i, ax := range axes {
		out[i] = Axis{Name: ax.Name, Values: append([]float64(nil), ax.Values...)}
	}
	return out
}
