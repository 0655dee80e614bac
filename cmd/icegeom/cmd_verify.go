package main

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/icegeom/geometry"
	"github.com/katalvlaran/icegeom/scenario"
)

// errNondeterministic reports output that depends on the rank count.
var errNondeterministic = errors.New("output differs between rank counts")

var verifyRanks []int

// verifyCmd checks that the result does not depend on the number of ranks.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every rank count produces the same masks",
	Long: `Runs the geometry update of a scenario once per rank count and compares
the results cell by cell. Without --scenario or --builtin every built-in
scenario is checked. Rank counts larger than the number of grid rows are
skipped.

Example:
  icegeom verify --builtin bay --ranks 1,2,3,9`,
	Args: cobra.NoArgs,
	RunE: verifyScenarios,
}

func init() {
	verifyCmd.Flags().IntSliceVarP(&verifyRanks, "ranks", "n", []int{1, 2, 3, 4}, "Rank counts to compare")
}

func verifyScenarios(cmd *cobra.Command, args []string) error {
	if len(verifyRanks) == 0 {
		return fmt.Errorf("--ranks needs at least one rank count")
	}
	scs, err := selectedScenarios(true)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	for _, sc := range scs {
		_, my := sc.Dims()
		var ranks []int
		for _, n := range verifyRanks {
			if n <= my {
				ranks = append(ranks, n)
			}
		}
		if len(ranks) == 0 {
			return fmt.Errorf("scenario %s: no rank count fits %d rows", sc.Name, my)
		}

		snaps := make([]*geometry.Snapshot, len(ranks))
		g, gctx := errgroup.WithContext(ctx)
		for k, n := range ranks {
			g.Go(func() error {
				s, err := scenario.Run(gctx, sc, cfg.Pico, n, logger.With(zap.String("scenario", sc.Name)))
				if err != nil {
					return err
				}
				snaps[k] = s
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for k := 1; k < len(ranks); k++ {
			if diff := cmp.Diff(snaps[0], snaps[k]); diff != "" {
				return fmt.Errorf("%w: scenario %s, %d vs %d ranks (-want +got):\n%s",
					errNondeterministic, sc.Name, ranks[0], ranks[k], diff)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok  %-12s ranks %v\n", sc.Name, ranks)
	}
	return nil
}
