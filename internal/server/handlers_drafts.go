package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

const maxRequestBody = 64 << 10

// DraftRequest is the request body for the draft endpoints. A blank role is
// accepted here and resolved by the workflow as empty input.
type DraftRequest struct {
	Role string `json:"role" validate:"max=200"`
}

// DraftResponse reports a resolved draft.
type DraftResponse struct {
	RequestID string             `json:"request_id"`
	Outcome   types.DraftOutcome `json:"outcome"`
	Message   string             `json:"message"`
	Text      string             `json:"text,omitempty"`
	Attempts  int                `json:"attempts"`
}

// AttemptEvent is the payload of "attempt" and "throttled" stream events.
type AttemptEvent struct {
	RequestID string `json:"request_id"`
	Attempt   int    `json:"attempt"`
	DelayMS   int64  `json:"delay_ms,omitempty"`
}

func newDraftResponse(req *types.DraftRequest, result types.DraftResult) DraftResponse {
	return DraftResponse{
		RequestID: req.ID.String(),
		Outcome:   result.Outcome,
		Message:   result.Message(),
		Text:      result.Text,
		Attempts:  result.Attempts,
	}
}

// decodeDraftRequest reads and validates a DraftRequest body.
func (s *Server) decodeDraftRequest(w http.ResponseWriter, r *http.Request) (*DraftRequest, error) {
	var req DraftRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid request body"}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, extractValidationError(err)
	}
	return &req, nil
}

// extractValidationError converts the first validator failure into an ErrValidation.
func extractValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}

// handleDraft generates a draft and waits for the result
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	body, err := s.decodeDraftRequest(w, r)
	if err != nil {
		s.typedErrorResponse(w, err)
		return
	}

	req := types.NewDraftRequest(body.Role, s.profile)
	result := s.workflow.Run(r.Context(), req, nil)
	s.jsonResponse(w, DraftStatus(result.Outcome), newDraftResponse(req, result))
}

// handleDraftStream generates a draft and streams retry progress via SSE
func (s *Server) handleDraftStream(w http.ResponseWriter, r *http.Request) {
	body, err := s.decodeDraftRequest(w, r)
	if err != nil {
		s.typedErrorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	req := types.NewDraftRequest(body.Role, s.profile)
	progress := drafting.ObserverFunc(func(e drafting.Event) {
		var werr error
		switch e.Kind {
		case drafting.EventAttempt:
			werr = sse.WriteEvent("attempt", AttemptEvent{RequestID: e.RequestID.String(), Attempt: e.Attempt})
		case drafting.EventThrottled:
			werr = sse.WriteEvent("throttled", AttemptEvent{
				RequestID: e.RequestID.String(),
				Attempt:   e.Attempt,
				DelayMS:   e.Delay.Milliseconds(),
			})
		}
		if werr != nil {
			log.Printf("Error writing SSE event: %v", werr)
		}
	})

	result := s.workflow.Run(r.Context(), req, progress)
	if err := sse.WriteComplete(newDraftResponse(req, result)); err != nil {
		log.Printf("Error writing SSE event: %v", err)
	}
}
