package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/cli"
	"github.com/aretw0/indicator/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the defaulting engine as a JSON API. Documents in the workspace
are available under /documents and Prometheus metrics under /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		tui.PrintBanner(os.Stderr, indicator.Version)
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunServe(ctx, options(cmd), port, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
