package analysis

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/oxygene76/rskygrid/internal/types"
	"github.com/oxygene76/rskygrid/pkg/sweep"
)

// DefaultTopPoints is how many grid points Summarize ranks by masked fraction.
const DefaultTopPoints = 5

// Manager runs sweeps and summarizes them
type Manager struct {
	opts      sweep.Options
	topPoints int
	verbose   bool
}

// NewManager creates a new analysis manager
func NewManager(opts sweep.Options, verbose bool) *Manager {
	return &Manager{
		opts:      opts,
		topPoints: DefaultTopPoints,
		verbose:   verbose,
	}
}

// SetTopPoints sets how many grid points the summary ranks. Zero disables the ranking.
func (m *Manager) SetTopPoints(n int) {
	m.topPoints = n
}

// AnalyzeSweep runs the configured sweep and returns the raw result together
// with its summary.
func (m *Manager) AnalyzeSweep(ctx context.Context) (*sweep.Result, *types.SweepSummary, error) {
	log.Printf("Starting sweep: %d time samples, %d axes, %d workers",
		len(m.opts.Times), len(m.opts.Axes), m.opts.Workers)
	start := time.Now()

	res, err := sweep.Run(ctx, m.opts)
	if err != nil {
		return nil, nil, fmt.Errorf("sweep failed: %w", err)
	}

	summary := Summarize(res, m.topPoints)
	summary.Duration = time.Since(start)

	if m.verbose {
		log.Printf("Separation range: [%.4f, %.4f]", summary.Separation.Min, summary.Separation.Max)
		log.Printf("Grid points never below threshold: %d/%d", summary.Masking.NeverMasked, summary.GridPoints)
	}
	log.Printf("Sweep %s completed in %v: %d/%d cells below %.1f",
		summary.RunID, summary.Duration, summary.Masking.MaskedCells,
		summary.TimeSamples*summary.GridPoints, summary.Threshold)

	return res, summary, nil
}

// Summarize computes mask and separation statistics for a finished sweep.
// The top slice holds at most top grid points, best masked first.
func Summarize(res *sweep.Result, top int) *types.SweepSummary {
	rows, cols := res.Mask.Dims()

	summary := &types.SweepSummary{
		RunID:       uuid.NewString(),
		Indexing:    string(res.Grid.Indexing()),
		TimeSamples: rows,
		GridPoints:  cols,
		AxisShape:   res.Grid.Shape(),
		Threshold:   res.Threshold,
		Timestamp:   time.Now().UTC(),
		Separation: types.RangeStats{
			Min: mat.Min(res.Table),
			Max: mat.Max(res.Table),
		},
	}

	fractions := make([]float64, cols)
	points := make([]types.PointStats, cols)
	for j := 0; j < cols; j++ {
		n := res.Mask.ColCount(j)
		fractions[j] = float64(n) / float64(rows)
		points[j] = types.PointStats{
			Index:          j,
			Elements:       res.Grid.Point(j),
			MaskedSamples:  n,
			MaskedFraction: fractions[j],
		}

		switch n {
		case 0:
			summary.Masking.NeverMasked++
		case rows:
			summary.Masking.AlwaysMasked++
		}
	}

	summary.Masking.MaskedCells = res.Mask.Count()
	summary.Masking.MaskedFraction = float64(summary.Masking.MaskedCells) / float64(rows*cols)
	summary.Masking.ColumnMean, summary.Masking.ColumnStdDev = stat.MeanStdDev(fractions, nil)
	if cols < 2 {
		summary.Masking.ColumnStdDev = 0
	}

	if top > 0 {
		sort.SliceStable(points, func(a, b int) bool {
			return points[a].MaskedSamples > points[b].MaskedSamples
		})
		if top > len(points) {
			top = len(points)
		}
		for _, p := range points[:top] {
			if p.MaskedSamples == 0 {
				break
			}
			summary.TopPoints = append(summary.TopPoints, p)
		}
	}

	return summary
}
