package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/indicator/internal/cli"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the trace schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.PrintSchema(options(cmd), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
