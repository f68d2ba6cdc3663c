package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/indicator/internal/cli"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults [document...]",
	Short: "Resolve documents and print their defaults",
	Long: `Resolves every trace of the given documents. Each argument is a JSON or
YAML file, "-" for stdin, or a document ID in the workspace. Without
arguments every workspace document is resolved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		opts.Private, _ = cmd.Flags().GetBool("private")
		opts.InputFormat, _ = cmd.Flags().GetString("input")
		out, _ := cmd.Flags().GetString("out")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunDefaults(ctx, opts, args, os.Stdin, cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
	defaultsCmd.Flags().Bool("private", false, "Keep internal keys in the output")
	defaultsCmd.Flags().String("input", "yaml", "Format of a document read from stdin: json or yaml")
	defaultsCmd.Flags().String("out", "", "Also save the report to this .json or .yaml file")
}
