package drafting

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/portfolio-drafter/internal/llm"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

// DefaultAttemptTimeout bounds a single request so a stalled connection cannot hang an invocation.
const DefaultAttemptTimeout = 10 * time.Second

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures the Workflow.
type Options struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
	Tier           llm.ModelTier
	// Sleep replaces the backoff timer, e.g. to virtualize time in tests.
	Sleep SleepFunc
	// Observers receive events for every invocation.
	Observers []Observer
	// Logger receives diagnostic lines; nil uses the standard logger.
	Logger *log.Logger
}

// DefaultOptions returns the standard retry policy: 5 attempts, 1s base delay.
func DefaultOptions() *Options {
	return &Options{
		MaxAttempts:    types.MaxDraftAttempts,
		BaseDelay:      types.BaseDraftDelayMS * time.Millisecond,
		AttemptTimeout: DefaultAttemptTimeout,
		Tier:           llm.TierStandard,
		Sleep:          Sleep,
	}
}

// Workflow turns a target role into a DraftResult. It holds no per-invocation
// state, so one Workflow may serve concurrent invocations.
type Workflow struct {
	client llm.Client
	opts   Options
	logger *log.Logger
}

// New creates a Workflow around client. Zero-valued option fields take defaults.
func New(client llm.Client, opts *Options) *Workflow {
	defaults := DefaultOptions()
	if opts == nil {
		opts = defaults
	}

	o := *opts
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaults.MaxAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = defaults.BaseDelay
	}
	if o.Tier == "" {
		o.Tier = defaults.Tier
	}
	if o.Sleep == nil {
		o.Sleep = defaults.Sleep
	}

	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Workflow{client: client, opts: o, logger: logger}
}

// Generate drafts an email for targetRole using profile.
func (w *Workflow) Generate(ctx context.Context, targetRole string, profile *types.Profile) types.DraftResult {
	return w.Run(ctx, types.NewDraftRequest(targetRole, profile), nil)
}

// Run executes one invocation. obs, if non-nil, receives this invocation's
// events in addition to the workflow-wide observers. Run never panics on
// remote failures and always returns exactly one result variant.
func (w *Workflow) Run(ctx context.Context, req *types.DraftRequest, obs Observer) types.DraftResult {
	start := time.Now()
	observers := append(multiObserver{}, w.opts.Observers...)
	if obs != nil {
		observers = append(observers, obs)
	}

	result := w.run(ctx, req, observers)

	observers.OnDraftEvent(Event{
		Kind:      EventResolved,
		RequestID: req.ID,
		Attempt:   result.Attempts,
		Outcome:   result.Outcome,
		Elapsed:   time.Since(start),
	})
	if result.Err != nil {
		w.logger.Printf("[draft] %s resolved as %s after %d attempt(s): %v", req.ID, result.Outcome, result.Attempts, result.Err)
	} else {
		w.logger.Printf("[draft] %s resolved as %s after %d attempt(s)", req.ID, result.Outcome, result.Attempts)
	}
	return result
}

func (w *Workflow) run(ctx context.Context, req *types.DraftRequest, observers multiObserver) types.DraftResult {
	if req.Blank() {
		return types.DraftFailed(types.OutcomeEmptyInput, 0, nil)
	}
	if req.Profile == nil {
		return types.DraftFailed(types.OutcomeTransportFailure, 0, errors.New("profile is required"))
	}

	prompt, err := BuildPrompt(req.TargetRole, req.Profile)
	if err != nil {
		return types.DraftFailed(types.OutcomeTransportFailure, 0, fmt.Errorf("failed to build prompt: %w", err))
	}

	var lastErr error
	for attempt := 0; attempt < w.opts.MaxAttempts; attempt++ {
		calls := attempt + 1
		observers.OnDraftEvent(Event{Kind: EventAttempt, RequestID: req.ID, Attempt: calls})

		text, err := w.attempt(ctx, prompt)
		switch {
		case err == nil:
			return types.DraftSucceeded(text, calls)

		case errors.Is(err, llm.ErrNoContent):
			return types.DraftFailed(types.OutcomeNoContent, calls, err)

		case llm.IsRateLimited(err):
			lastErr = err
			if calls == w.opts.MaxAttempts {
				// nothing follows the last attempt, so no delay either
				observers.OnDraftEvent(Event{Kind: EventThrottled, RequestID: req.ID, Attempt: calls})
				break
			}
			delay := Backoff(w.opts.BaseDelay, attempt)
			w.logger.Printf("[draft] %s rate limited on attempt %d, retrying in %v", req.ID, calls, delay)
			observers.OnDraftEvent(Event{Kind: EventThrottled, RequestID: req.ID, Attempt: calls, Delay: delay})
			if err := w.opts.Sleep(ctx, delay); err != nil {
				return types.DraftFailed(types.OutcomeTransportFailure, calls, fmt.Errorf("backoff interrupted: %w", err))
			}

		default:
			return types.DraftFailed(types.OutcomeTransportFailure, calls, err)
		}
	}

	return types.DraftFailed(types.OutcomeRetriesExhausted, w.opts.MaxAttempts, lastErr)
}

func (w *Workflow) attempt(ctx context.Context, prompt string) (string, error) {
	if w.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.opts.AttemptTimeout)
		defer cancel()
	}
	return w.client.GenerateContent(ctx, prompt, w.opts.Tier)
}

// Backoff returns base * 2^attempt, with attempt counted from 0.
func Backoff(base time.Duration, attempt int) time.Duration {
	return base << uint(attempt)
}

// Sleep waits for d without blocking anything but the calling goroutine.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
