package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

// SessionDraftResponse acknowledges an accepted submission.
type SessionDraftResponse struct {
	RequestID string       `json:"request_id"`
	Sequence  uint64       `json:"sequence"`
	State     DisplayState `json:"state"`
}

func (s *Server) lookupSession(r *http.Request) (*Session, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid session ID"}
	}
	return s.sessions.Get(id)
}

// handleCreateSession creates a session with an empty display state
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	log.Printf("[session] created %s", sess.ID)
	s.jsonResponse(w, http.StatusCreated, sess.Snapshot())
}

// handleGetSession returns the current display state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.typedErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleSessionDraft starts a draft in the background. Only the most recent
// submission may update the session's display state.
func (s *Server) handleSessionDraft(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.typedErrorResponse(w, err)
		return
	}
	body, err := s.decodeDraftRequest(w, r)
	if err != nil {
		s.typedErrorResponse(w, err)
		return
	}

	req := types.NewDraftRequest(body.Role, s.profile)
	seq, ctx := s.sessions.Begin(sess, body.Role)
	state := sess.Snapshot()

	go func() {
		result := s.workflow.Run(ctx, req, nil)
		if !sess.Resolve(seq, result) {
			log.Printf("[session] %s discarded stale result #%d (%s)", sess.ID, seq, result.Outcome)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, SessionDraftResponse{
		RequestID: req.ID.String(),
		Sequence:  seq,
		State:     state,
	})
}

// handleDeleteSession drops a session and cancels its in-flight draft
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.typedErrorResponse(w, &ErrValidation{Field: "id", Message: "invalid session ID"})
		return
	}
	if err := s.sessions.Delete(id); err != nil {
		s.typedErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
