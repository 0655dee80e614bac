// Command icegeom computes the ice-shelf geometry masks of a scenario on a
// group of in-process ranks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/logging"
	"github.com/katalvlaran/icegeom/scenario"
)

var (
	// Global flags
	configPath string
	verbose    bool
	timeout    time.Duration

	// Scenario selection, shared by run and verify
	scenarioPath string
	builtinName  string

	// Set up by the root command
	cfg    *config.Config
	logger *zap.Logger
	runID  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "icegeom",
	Short: "Ice-shelf geometry decomposition",
	Long: `icegeom splits the floating margin of an ice sheet into the masks a
sub-shelf melt parameterization works on: ice rises, continental shelf, ice
shelves, open ocean and lakes, distances to the grounding line and the calving
front, and ocean boxes.

Ranks run as goroutines that cooperate through collective operations, so a
scenario can be checked under any number of ranks on one machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		base, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		runID = uuid.New().String()
		logger = base.With(zap.String("run_id", runID))
		logger.Debug("Loaded configuration", zap.String("path", configPath), zap.Int("ranks", cfg.Run.Ranks))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "icegeom.yaml", "Configuration file (defaults apply if it does not exist)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")

	for _, c := range []*cobra.Command{runCmd, verifyCmd} {
		c.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario YAML file")
		c.Flags().StringVarP(&builtinName, "builtin", "b", "", "Built-in scenario name (see 'icegeom scenarios')")
		c.MarkFlagsMutuallyExclusive("scenario", "builtin")
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(scenariosCmd)
}

// commandContext returns a context bounded by --timeout and cancelled on
// SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// selectedScenarios returns the scenario named by --scenario or --builtin.
// With neither flag set, all returns every built-in scenario and !all fails.
func selectedScenarios(all bool) ([]*scenario.Scenario, error) {
	switch {
	case scenarioPath != "":
		sc, err := scenario.Load(scenarioPath)
		if err != nil {
			return nil, err
		}
		return []*scenario.Scenario{sc}, nil
	case builtinName != "":
		sc, err := scenario.Builtin(builtinName)
		if err != nil {
			return nil, err
		}
		return []*scenario.Scenario{sc}, nil
	case !all:
		return nil, fmt.Errorf("one of --scenario or --builtin is required")
	}

	var out []*scenario.Scenario
	for _, name := range scenario.Names() {
		sc, err := scenario.Builtin(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
