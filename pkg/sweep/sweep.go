// Package sweep evaluates the sky-projected separation over a parameter grid
// and thresholds the result.
package sweep

import (
	"context"

	"gonum.org/v1/gonum/mat"

	astromath "github.com/oxygene76/rskygrid/pkg/astronomy/math"
	"github.com/oxygene76/rskygrid/pkg/astronomy/orbital"
	"github.com/oxygene76/rskygrid/pkg/grid"
)

// Reference time axis.
const (
	DefaultTimeStart   = -100.0
	DefaultTimeEnd     = 100.0
	DefaultTimeSamples = 1000
)

// TimeAxis returns n evenly spaced times over [start, end].
func TimeAxis(start, end float64, n int) []float64 {
	return astromath.Linspace(start, end, n)
}

// DefaultTimeAxis returns the 1000-sample axis over [-100, 100].
func DefaultTimeAxis() []float64 {
	return TimeAxis(DefaultTimeStart, DefaultTimeEnd, DefaultTimeSamples)
}

// Options configures a complete sweep.
type Options struct {
	Times     []float64
	Axes      []grid.Axis
	Indexing  grid.Indexing
	Separator orbital.Separator
	Aux       orbital.Aux
	Workers   int
	Threshold float64
}

// DefaultOptions reproduces the reference sweep.
func DefaultOptions() Options {
	return Options{
		Times:     DefaultTimeAxis(),
		Axes:      grid.DefaultAxes(),
		Indexing:  grid.IndexingIJ,
		Separator: orbital.Kepler{},
		Aux:       orbital.DefaultAux(),
		Workers:   1,
		Threshold: DefaultThreshold,
	}
}

// Result is everything a sweep produces.
type Result struct {
	Times     []float64
	Grid      *grid.Grid
	Table     *mat.Dense
	Mask      *Mask
	Threshold float64
}

// Run builds the grid, evaluates every grid point and thresholds the table.
func Run(ctx context.Context, opts Options) (*Result, error) {
	g, err := grid.Build(opts.Axes, opts.Indexing)
	if err != nil {
		return nil, err
	}

	ev := NewEvaluator(opts.Separator, opts.Aux, opts.Workers)
	table, err := ev.Evaluate(ctx, opts.Times, g)
	if err != nil {
		return nil, err
	}

	return &Result{
		Times:     opts.Times,
		Grid:      g,
		Table:     table,
		Mask:      Threshold(table, opts.Threshold),
		Threshold: opts.Threshold,
	}, nil
}
