package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/indicator/internal/cli"
)

var pushCmd = &cobra.Command{
	Use:   "push [document...]",
	Short: "Copy documents into the Redis store",
	Long: `Copies documents into Redis so that "serve --redis" instances share them.
Arguments follow the defaults command. The Redis password is read from
INDICATOR_REDIS_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		opts.InputFormat, _ = cmd.Flags().GetString("input")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunPush(ctx, opts, args, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().String("input", "yaml", "Format of a document read from stdin: json or yaml")
}
