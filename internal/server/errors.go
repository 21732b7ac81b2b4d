package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates the session does not exist or was pruned
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrStreamingUnsupported indicates the response writer cannot flush
type ErrStreamingUnsupported struct{}

func (e *ErrStreamingUnsupported) Error() string {
	return "streaming not supported"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DraftStatus returns the HTTP status used to report a resolved draft.
func DraftStatus(outcome types.DraftOutcome) int {
	switch outcome {
	case types.OutcomeSuccess:
		return http.StatusOK
	case types.OutcomeEmptyInput:
		return http.StatusUnprocessableEntity
	case types.OutcomeRetriesExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
