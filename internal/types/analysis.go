package types

import (
	"time"

	"github.com/oxygene76/rskygrid/pkg/astronomy/orbital"
)

// SweepSummary describes one completed sweep.
type SweepSummary struct {
	RunID       string        `json:"run_id"`
	Indexing    string        `json:"indexing"`
	TimeSamples int           `json:"time_samples"`
	GridPoints  int           `json:"grid_points"`
	AxisShape   []int         `json:"axis_shape"`
	Threshold   float64       `json:"threshold"`
	Timestamp   time.Time     `json:"timestamp"`
	Duration    time.Duration `json:"duration"`

	Masking    MaskStats    `json:"masking"`
	Separation RangeStats   `json:"separation"`
	TopPoints  []PointStats `json:"top_points,omitempty"`
}

// MaskStats aggregates the boolean mask.
type MaskStats struct {
	MaskedCells    int     `json:"masked_cells"`
	MaskedFraction float64 `json:"masked_fraction"`
	ColumnMean     float64 `json:"column_fraction_mean"`
	ColumnStdDev   float64 `json:"column_fraction_stddev"`
	NeverMasked    int     `json:"never_masked_points"`
	AlwaysMasked   int     `json:"always_masked_points"`
}

// RangeStats is the value range of the separation table.
type RangeStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PointStats is the masked fraction of a single grid point.
type PointStats struct {
	Index          int              `json:"index"`
	Elements       orbital.Elements `json:"elements"`
	MaskedSamples  int              `json:"masked_samples"`
	MaskedFraction float64          `json:"masked_fraction"`
}
