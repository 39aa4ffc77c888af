package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oxygene76/rskygrid/pkg/utils"
)

// cli holds the state shared by all commands.
type cli struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "rskygrid",
		Short: "Sky-projected separation sweep over Keplerian orbital elements",
		Long: `Evaluates the sky-projected separation of a companion and its primary on a
grid of orbital elements (t0, period, a, e, omega, incl) and masks the time
samples where the separation falls below a threshold.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.rskygrid/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		runCmd(c),
		axesCmd(c),
		configCmd(c),
	)

	return rootCmd
}

func (c *cli) initConfig() error {
	c.v = utils.NewViper(c.cfgFile)
	return nil
}

func (c *cli) loadConfig() (*utils.Config, error) {
	cfg, err := utils.LoadConfig(c.v)
	if err != nil {
		return nil, err
	}
	if c.verbose {
		if used := c.v.ConfigFileUsed(); used != "" {
			log.Println("Using config file:", used)
		}
	}
	return cfg, nil
}
