package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/indicator"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of indicator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "indicator version %s\n", indicator.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
