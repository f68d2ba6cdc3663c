package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/cli"
	"github.com/aretw0/indicator/internal/presentation/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Resolve workspace documents whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		tui.PrintBanner(cmd.OutOrStdout(), indicator.Version)
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunWatch(ctx, options(cmd), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
