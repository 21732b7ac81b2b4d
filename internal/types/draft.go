package types

import (
	"strings"

	"github.com/google/uuid"
)

// Retry constants for one draft invocation.
const (
	// MaxDraftAttempts is the number of requests made before giving up on a throttled endpoint
	MaxDraftAttempts = 5
	// BaseDraftDelayMS is the first backoff delay; it doubles after every throttled attempt
	BaseDraftDelayMS = 1000
)

// DraftRequest is a single user invocation of the draft workflow.
type DraftRequest struct {
	ID         uuid.UUID `json:"id"`
	TargetRole string    `json:"target_role"`
	Profile    *Profile  `json:"-"`
}

// NewDraftRequest creates a request with a fresh ID.
func NewDraftRequest(targetRole string, profile *Profile) *DraftRequest {
	return &DraftRequest{
		ID:         uuid.New(),
		TargetRole: targetRole,
		Profile:    profile,
	}
}

// Blank reports whether the target role is empty after trimming.
func (r *DraftRequest) Blank() bool {
	return strings.TrimSpace(r.TargetRole) == ""
}

// DraftOutcome tags which variant of DraftResult is populated.
type DraftOutcome string

const (
	// OutcomeSuccess means the service returned draft text
	OutcomeSuccess DraftOutcome = "success"
	// OutcomeEmptyInput means the role was blank and no request was made
	OutcomeEmptyInput DraftOutcome = "empty_input"
	// OutcomeNoContent means the service answered without a usable candidate
	OutcomeNoContent DraftOutcome = "no_content"
	// OutcomeTransportFailure covers network errors, malformed bodies and non-429 error statuses
	OutcomeTransportFailure DraftOutcome = "transport_failure"
	// OutcomeRetriesExhausted means every attempt was throttled
	OutcomeRetriesExhausted DraftOutcome = "retries_exhausted"
)

// User-facing messages for each failure outcome.
const (
	MessageEmptyInput       = "Please enter a job role."
	MessageNoContent        = "Sorry, I couldn't generate an email draft. Please try again with a different job role."
	MessageTransportFailure = "An error occurred while generating the draft. Please check the logs."
	MessageRetriesExhausted = "Failed to generate email after multiple retries. Please try again later."
)

// DraftResult is the resolved outcome of one invocation. Exactly one variant is
// populated: Text is set only for OutcomeSuccess.
type DraftResult struct {
	Outcome  DraftOutcome `json:"outcome"`
	Text     string       `json:"text,omitempty"`
	Attempts int          `json:"attempts"`
	// Err carries the underlying cause for diagnostics; it is never shown to users.
	Err error `json:"-"`
}

// DraftSucceeded builds a success result.
func DraftSucceeded(text string, attempts int) DraftResult {
	return DraftResult{Outcome: OutcomeSuccess, Text: text, Attempts: attempts}
}

// DraftFailed builds a failure result of the given outcome.
func DraftFailed(outcome DraftOutcome, attempts int, err error) DraftResult {
	return DraftResult{Outcome: outcome, Attempts: attempts, Err: err}
}

// OK reports whether the result carries draft text.
func (r DraftResult) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Message returns the text a presentation layer should render for this result.
func (r DraftResult) Message() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return r.Text
	case OutcomeEmptyInput:
		return MessageEmptyInput
	case OutcomeNoContent:
		return MessageNoContent
	case OutcomeRetriesExhausted:
		return MessageRetriesExhausted
	default:
		return MessageTransportFailure
	}
}
