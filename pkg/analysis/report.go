package analysis

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oxygene76/rskygrid/internal/types"
	"github.com/oxygene76/rskygrid/pkg/grid"
)

// Output formats accepted by WriteSummary.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// WriteSummary renders summary in the given format.
func WriteSummary(w io.Writer, summary *types.SweepSummary, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case FormatText, "":
		return writeSummaryText(w, summary)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func writeSummaryText(w io.Writer, s *types.SweepSummary) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("Sweep %s\n", s.RunID)
	printf("  table:      %d x %d (indexing %s, axes %v)\n", s.TimeSamples, s.GridPoints, s.Indexing, s.AxisShape)
	printf("  threshold:  %.4f\n", s.Threshold)
	printf("  masked:     %d cells (%.4f)\n", s.Masking.MaskedCells, s.Masking.MaskedFraction)
	printf("  per point:  mean %.4f, stddev %.4f\n", s.Masking.ColumnMean, s.Masking.ColumnStdDev)
	printf("  never/always masked points: %d/%d\n", s.Masking.NeverMasked, s.Masking.AlwaysMasked)
	printf("  separation: [%.4f, %.4f]\n", s.Separation.Min, s.Separation.Max)
	printf("  duration:   %v\n", s.Duration)

	for _, p := range s.TopPoints {
		el := p.Elements
		printf("  #%-4d %5.1f%%  t0=%.3f period=%.3f a=%.3f e=%.3f omega=%.3f incl=%.3f\n",
			p.Index, 100*p.MaskedFraction, el.T0, el.Period, el.A, el.E, el.Omega, el.Incl)
	}

	return err
}

// WriteAxes lists the values of every axis and the resulting grid size.
func WriteAxes(w io.Writer, axes []grid.Axis) error {
	total := 1
	for _, ax := range axes {
		if _, err := fmt.Fprintf(w, "%-6s (%d):", ax.Name, len(ax.Values)); err != nil {
			return err
		}
		for _, v := range ax.Values {
			if _, err := fmt.Fprintf(w, " %.6f", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		total *= len(ax.Values)
	}
	_, err := fmt.Fprintf(w, "points: %d\n", total)
	return err
}
