package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/icegeom/render"
	"github.com/katalvlaran/icegeom/scenario"
)

var (
	runRanks  int
	runFormat string
)

// runCmd computes the masks of one scenario and prints them.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the geometry masks of a scenario",
	Long: `Runs one geometry update of a scenario and prints every mask, the
distance fields, the box mask and the per-shelf statistics.

Example:
  icegeom run --builtin bay --ranks 3 --format color`,
	Args: cobra.NoArgs,
	RunE: runScenario,
}

func init() {
	runCmd.Flags().IntVarP(&runRanks, "ranks", "n", 0, "Number of ranks (default: run.ranks from the configuration)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", string(render.FormatText), "Output format: text, color or yaml")
}

func runScenario(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(runFormat)
	if err != nil {
		return err
	}
	scs, err := selectedScenarios(false)
	if err != nil {
		return err
	}
	sc := scs[0]

	ranks := cfg.Run.Ranks
	if runRanks > 0 {
		ranks = runRanks
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	log := logger.With(zap.String("scenario", sc.Name))
	log.Info("Running scenario", zap.Int("ranks", ranks))

	snap, err := scenario.Run(ctx, sc, cfg.Pico, ranks, log)
	if err != nil {
		return err
	}
	return render.Snapshot(cmd.OutOrStdout(), snap, format)
}
