package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/oxygene76/rskygrid/internal/types"
	"github.com/oxygene76/rskygrid/pkg/astronomy/orbital"
	"github.com/oxygene76/rskygrid/pkg/grid"
	"github.com/oxygene76/rskygrid/pkg/sweep"
)

func smallResult(t *testing.T) *sweep.Result {
	t.Helper()

	axes := []grid.Axis{
		{Name: grid.AxisT0, Values: []float64{0}},
		{Name: grid.AxisPeriod, Values: []float64{10}},
		{Name: grid.AxisA, Values: []float64{50}},
		{Name: grid.AxisE, Values: []float64{0}},
		{Name: grid.AxisOmega, Values: []float64{0}},
		{Name: grid.AxisIncl, Values: []float64{1.0, 1.2, 1.5}},
	}
	g, err := grid.Build(axes, grid.IndexingIJ)
	require.NoError(t, err)

	table := mat.NewDense(4, 3, []float64{
		10, 100, 150,
		20, 99, 150,
		30, 120, 150,
		40, 100, 150,
	})

	return &sweep.Result{
		Times:     []float64{0, 1, 2, 3},
		Grid:      g,
		Table:     table,
		Mask:      sweep.Threshold(table, 100),
		Threshold: 100,
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(smallResult(t), 2)

	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)

	assert.Equal(t, "ij", s.Indexing)
	assert.Equal(t, 4, s.TimeSamples)
	assert.Equal(t, 3, s.GridPoints)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 3}, s.AxisShape)

	assert.Equal(t, 5, s.Masking.MaskedCells)
	assert.InDelta(t, 5.0/12.0, s.Masking.MaskedFraction, 1e-12)
	assert.InDelta(t, (1.0+0.25+0)/3, s.Masking.ColumnMean, 1e-12)
	assert.Greater(t, s.Masking.ColumnStdDev, 0.0)
	assert.Equal(t, 1, s.Masking.NeverMasked)
	assert.Equal(t, 1, s.Masking.AlwaysMasked)

	assert.Equal(t, 10.0, s.Separation.Min)
	assert.Equal(t, 150.0, s.Separation.Max)

	require.Len(t, s.TopPoints, 2)
	assert.Equal(t, 0, s.TopPoints[0].Index)
	assert.Equal(t, 4, s.TopPoints[0].MaskedSamples)
	assert.Equal(t, 1, s.TopPoints[1].Index)
	assert.InDelta(t, 1.2, s.TopPoints[1].Elements.Incl, 1e-12)
}

func TestSummarize_TopSkipsUnmaskedPoints(t *testing.T) {
	s := Summarize(smallResult(t), 10)
	assert.Len(t, s.TopPoints, 2)

	s = Summarize(smallResult(t), 0)
	assert.Empty(t, s.TopPoints)
}

func TestManager_AnalyzeSweep(t *testing.T) {
	opts := sweep.DefaultOptions()
	opts.Times = sweep.TimeAxis(-10, 10, 21)
	opts.Separator = orbital.SeparatorFunc(func(times []float64, el orbital.Elements, aux orbital.Aux) ([]float64, error) {
		out := make([]float64, len(times))
		for i := range out {
			out[i] = el.A
		}
		return out, nil
	})
	opts.Threshold = 75

	res, summary, err := NewManager(opts, true).AnalyzeSweep(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)

	// Half of the grid has a=50, the other half a=100.
	assert.Equal(t, 720, summary.GridPoints)
	assert.Equal(t, 21*360, summary.Masking.MaskedCells)
	assert.Equal(t, 360, summary.Masking.NeverMasked)
	assert.Equal(t, 360, summary.Masking.AlwaysMasked)
	assert.Len(t, summary.TopPoints, DefaultTopPoints)
	assert.Positive(t, summary.Duration)
}

func TestManager_AnalyzeSweepFailure(t *testing.T) {
	opts := sweep.DefaultOptions()
	opts.Times = []float64{0}
	opts.Axes[3].Values = []float64{1.2}

	_, _, err := NewManager(opts, false).AnalyzeSweep(context.Background())
	assert.ErrorIs(t, err, orbital.ErrDegenerateOrbit)
}

func TestWriteSummary(t *testing.T) {
	s := Summarize(smallResult(t), 1)

	var text bytes.Buffer
	require.NoError(t, WriteSummary(&text, s, FormatText))
	assert.Contains(t, text.String(), s.RunID)
	assert.Contains(t, text.String(), "table:      4 x 3")
	assert.Contains(t, text.String(), "#0")

	var js bytes.Buffer
	require.NoError(t, WriteSummary(&js, s, FormatJSON))
	var decoded types.SweepSummary
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, s.RunID, decoded.RunID)
	assert.Equal(t, s.Masking, decoded.Masking)

	assert.Error(t, WriteSummary(&bytes.Buffer{}, s, "xml"))
}

func TestWriteAxes_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAxes(&buf, grid.DefaultAxes()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default_axes", buf.Bytes())
}
