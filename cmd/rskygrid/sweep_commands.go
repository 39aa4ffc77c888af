package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxygene76/rskygrid/pkg/analysis"
)

func runCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the separation sweep and print a summary",
		Long: `
Build the parameter grid, evaluate the separation for every grid point over the
time axis and threshold the result table.

Examples:
  # Reference sweep: 1000 time samples x 720 grid points
  rskygrid run

  # Parallel evaluation with JSON output
  rskygrid run --workers 8 --format json

  # Cartesian (xy) ordering: period varies slowest
  rskygrid run --indexing xy
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings := map[string]string{
				"workers":    "evaluator.workers",
				"threshold":  "evaluator.threshold",
				"indexing":   "grid.indexing",
				"format":     "output.format",
				"top-points": "output.top_points",
			}
			for flag, key := range bindings {
				if err := c.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			verbose := c.verbose || cfg.Output.LogLevel == "debug"
			manager := analysis.NewManager(opts, verbose)
			manager.SetTopPoints(cfg.Output.TopPoints)

			_, summary, err := manager.AnalyzeSweep(cmd.Context())
			if err != nil {
				return err
			}

			return analysis.WriteSummary(cmd.OutOrStdout(), summary, cfg.Output.Format)
		},
	}

	cmd.Flags().Int("workers", 1, "Number of grid points evaluated concurrently")
	cmd.Flags().Float64("threshold", 100.0, "Mask samples with separation strictly below this value")
	cmd.Flags().String("indexing", "ij", "Grid flattening order (ij, xy)")
	cmd.Flags().String("format", "text", "Output format (text, json)")
	cmd.Flags().Int("top-points", analysis.DefaultTopPoints, "Number of best-masked grid points to list")

	return cmd
}

func axesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "axes",
		Short: "Show the values of every grid axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return analysis.WriteAxes(cmd.OutOrStdout(), cfg.Axes())
		},
	}
}

func configCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	})

	return cmd
}
