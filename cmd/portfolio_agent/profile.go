package main

import (
	"fmt"

	"github.com/jonathan/portfolio-drafter/internal/observability"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print or validate the portfolio profile",
	Long:  "Loads the portfolio profile (built-in, or --profile), validates it against the JSON schema and struct rules, and prints its sections.",
	RunE:  runProfile,
}

var (
	profileValidateOnly bool
)

func init() {
	profileCmd.Flags().BoolVar(&profileValidateOnly, "validate", false, "Only validate the profile")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	p, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if profileValidateOnly {
		source := cfg.ProfilePath
		if source == "" {
			source = "built-in profile"
		}
		_, err := fmt.Fprintf(out, "✓ %s is valid (%d skill categories, %d projects)\n", source, len(p.Skills), len(p.Projects))
		return err
	}

	observability.NewPrinter(out).PrintProfile(p)
	return nil
}
