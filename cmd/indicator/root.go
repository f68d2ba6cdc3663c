package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/indicator/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "indicator",
	Short: "Indicator resolves gauge style indicator traces",
	Long: `Indicator fills sparse indicator trace descriptions with their defaults.
Documents are read from files, stdin or a workspace directory and every
malformed value is replaced and reported.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrLintFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Workspace directory holding indicator documents")
	rootCmd.PersistentFlags().Bool("debug", false, "Log engine activity to stderr")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: json, yaml or markdown (default markdown on a terminal, json otherwise)")
	rootCmd.PersistentFlags().IntP("parallelism", "j", 0, "Traces resolved at once (default GOMAXPROCS)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address holding shared documents (serve, mcp, push)")
	rootCmd.PersistentFlags().Duration("redis-ttl", 0, "Expiry of documents pushed to Redis (0 keeps them)")
}

// options reads the persistent flags.
func options(cmd *cobra.Command) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	debug, _ := cmd.Flags().GetBool("debug")
	format, _ := cmd.Flags().GetString("output")
	parallelism, _ := cmd.Flags().GetInt("parallelism")
	redisAddr, _ := cmd.Flags().GetString("redis")
	redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")
	return cli.Options{
		Dir:         dir,
		Debug:       debug,
		Format:      format,
		Parallelism: parallelism,
		RedisAddr:   redisAddr,
		RedisTTL:    redisTTL,
	}
}
