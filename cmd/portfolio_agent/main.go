// Package main provides the entry point for the portfolio email drafter.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "portfolio_agent",
	Short:        "Portfolio email drafter",
	Long:         "Portfolio email drafter writes job-application emails for a target role from the portfolio's resume data, via CLI or HTTP API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Path to portfolio profile JSON (default: built-in profile)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
