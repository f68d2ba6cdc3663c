package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/indicator/internal/cli"
)

var lintCmd = &cobra.Command{
	Use:   "lint [document...]",
	Short: "Check documents for values defaulting would replace",
	Long: `Reports every value that would be replaced and every key the schema does
not know. Exits with status 1 when a document has issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		opts.InputFormat, _ = cmd.Flags().GetString("input")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunLint(ctx, opts, args, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().String("input", "yaml", "Format of a document read from stdin: json or yaml")
}
