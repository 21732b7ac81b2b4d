package main

import (
	"context"
	"fmt"

	"github.com/jonathan/portfolio-drafter/internal/config"
	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/jonathan/portfolio-drafter/internal/llm"
	"github.com/jonathan/portfolio-drafter/internal/profile"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

var (
	configPath  string
	profilePath string
)

// loadSettings resolves configuration with precedence
// flags > environment > config file > defaults.
func loadSettings() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.ApplyEnv(); err != nil {
		return nil, err
	}
	if profilePath != "" {
		merged.ProfilePath = profilePath
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// loadProfile loads the configured profile, or the built-in one.
func loadProfile(cfg *config.Config) (*types.Profile, error) {
	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

// newWorkflow builds the generation client and the workflow around it. The
// caller owns the returned client and must Close it.
func newWorkflow(ctx context.Context, cfg *config.Config, observers ...drafting.Observer) (*drafting.Workflow, llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}

	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	opts := drafting.DefaultOptions()
	if timeout := cfg.AttemptTimeout(); timeout > 0 {
		opts.AttemptTimeout = timeout
	}
	opts.Observers = observers

	return drafting.New(client, opts), client, nil
}
