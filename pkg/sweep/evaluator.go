package sweep

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/oxygene76/rskygrid/pkg/astronomy/orbital"
	"github.com/oxygene76/rskygrid/pkg/grid"
)

// Evaluator fills the separation table one grid point (column) at a time.
type Evaluator struct {
	Separator orbital.Separator
	Aux       orbital.Aux
	// Workers bounds the number of columns evaluated concurrently. Values
	// below 2 evaluate sequentially.
	Workers int
}

// NewEvaluator returns an Evaluator. A nil separator selects orbital.Kepler.
func NewEvaluator(sep orbital.Separator, aux orbital.Aux, workers int) *Evaluator {
	if sep == nil {
		sep = orbital.Kepler{}
	}
	return &Evaluator{Separator: sep, Aux: aux, Workers: workers}
}

// Evaluate returns a len(times) × g.Len() table whose column i holds the
// separations for grid point i. The first failing column aborts the sweep and
// no partial table is returned.
func (ev *Evaluator) Evaluate(ctx context.Context, times []float64, g *grid.Grid) (*mat.Dense, error) {
	if len(times) == 0 {
		return nil, errorsmod.Wrap(orbital.ErrInvalidGrid, "empty time axis")
	}
	if g == nil || g.Len() == 0 {
		return nil, errorsmod.Wrap(orbital.ErrInvalidGrid, "empty parameter grid")
	}

	sep := ev.Separator
	if sep == nil {
		sep = orbital.Kepler{}
	}

	table := mat.NewDense(len(times), g.Len(), nil)

	column := func(i int) error {
		el := g.Point(i)
		col, err := sep.Separation(times, el, ev.Aux)
		if err != nil {
			return errorsmod.Wrapf(err, "grid point %d (%+v)", i, el)
		}
		if len(col) != len(times) {
			return errorsmod.Wrapf(orbital.ErrLengthMismatch, "grid point %d: got %d values for %d times", i, len(col), len(times))
		}
		table.SetCol(i, col)
		return nil
	}

	if ev.Workers < 2 {
		for i := 0; i < g.Len(); i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := column(i); err != nil {
				return nil, err
			}
		}
		return table, nil
	}

	// Each column is written by exactly one goroutine.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(ev.Workers)
	for i := 0; i < g.Len(); i++ {
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return column(i)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return table, nil
}
