package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/jonathan/portfolio-drafter/internal/observability"
	"github.com/jonathan/portfolio-drafter/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a job-application email for one or more roles",
	Long: `Drafts a job-application email for each --role using the portfolio profile.
Several roles are drafted concurrently and printed in the order given.
Exits non-zero if any draft fails for a reason other than a blank role.`,
	RunE: runDraft,
}

var (
	draftRoles       []string
	draftAPIKey      string
	draftVerbose     bool
	draftConcurrency int
)

func init() {
	draftCmd.Flags().StringArrayVarP(&draftRoles, "role", "r", nil, "Target job role (repeatable)")
	draftCmd.Flags().StringVar(&draftAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	draftCmd.Flags().BoolVarP(&draftVerbose, "verbose", "v", false, "Print attempt-level progress")
	draftCmd.Flags().IntVar(&draftConcurrency, "concurrency", 3, "Maximum drafts in flight")

	if err := draftCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(draftCmd)
}

// syncWriter serializes writes from concurrent drafts.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func runDraft(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if draftAPIKey != "" {
		cfg.APIKey = draftAPIKey
	}
	verbose := draftVerbose || cfg.Verbose

	p, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var observers []drafting.Observer
	if verbose {
		progress := observability.NewPrinter(&syncWriter{w: cmd.ErrOrStderr()})
		observers = append(observers, drafting.ObserverFunc(progress.PrintDraftEvent))
	}

	workflow, client, err := newWorkflow(cmd.Context(), cfg, observers...)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	results := make([]types.DraftResult, len(draftRoles))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(draftConcurrency, 1))
	for i, role := range draftRoles {
		g.Go(func() error {
			results[i] = workflow.Generate(ctx, role, p)
			return nil
		})
	}
	_ = g.Wait()

	printer := observability.NewPrinter(out)
	failed := 0
	for i, result := range results {
		role := draftRoles[i]
		switch {
		case verbose:
			printer.PrintDraftResult(role, result)
		case len(draftRoles) > 1:
			fmt.Fprintf(out, "=== %s ===\n%s\n\n", role, result.Message())
		default:
			fmt.Fprintln(out, result.Message())
		}

		if !result.OK() && result.Outcome != types.OutcomeEmptyInput {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d draft(s) failed", failed, len(results))
	}
	return nil
}
