package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/icegeom/scenario"
)

// scenariosCmd lists the built-in scenarios.
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range scenario.Names() {
			sc, err := scenario.Builtin(name)
			if err != nil {
				return err
			}
			mx, my := sc.Dims()
			fmt.Fprintf(out, "%-12s %3dx%-3d %s\n", name, mx, my, strings.TrimSpace(sc.Description))
		}
		return nil
	},
}
