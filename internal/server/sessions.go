package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

// DefaultSessionTTL is how long a session may sit idle before it is pruned.
const DefaultSessionTTL = time.Hour

// DisplayState is what a UI renders for a session: a loading flag, at most
// one of error message or draft text, and the role that produced them.
type DisplayState struct {
	SessionID    string             `json:"session_id"`
	TargetRole   string             `json:"target_role"`
	Loading      bool               `json:"loading"`
	Outcome      types.DraftOutcome `json:"outcome,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
	DraftText    string             `json:"draft_text,omitempty"`
	Sequence     uint64             `json:"sequence"`
}

// Session holds the display state of one UI. Submitting a new role
// supersedes any in-flight draft: the older call is cancelled and its result,
// should it still arrive, is discarded.
type Session struct {
	ID uuid.UUID

	seq drafting.Sequencer

	mu       sync.Mutex
	state    DisplayState
	cancel   context.CancelFunc
	lastUsed time.Time
}

func newSession(now time.Time) *Session {
	id := uuid.New()
	return &Session{
		ID:       id,
		state:    DisplayState{SessionID: id.String()},
		lastUsed: now,
	}
}

// Begin records a new submission and returns its sequence number and the
// context the draft must run under.
func (s *Session) Begin(parent context.Context, role string, now time.Time) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	seq := s.seq.Next()
	s.state.Sequence = seq
	s.state.TargetRole = role
	s.state.Loading = true
	s.state.Outcome = ""
	s.state.ErrorMessage = ""
	s.state.DraftText = ""
	s.lastUsed = now
	return seq, ctx
}

// Resolve applies result if seq is still the latest submission. It reports
// whether the result was applied.
func (s *Session) Resolve(seq uint64, result types.DraftResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seq.IsLatest(seq) {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.state.Loading = false
	s.state.Outcome = result.Outcome
	if result.OK() {
		s.state.DraftText = result.Text
	} else {
		s.state.ErrorMessage = result.Message()
	}
	return true
}

// Snapshot returns a copy of the current display state.
func (s *Session) Snapshot() DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.Loading && s.lastUsed.Before(cutoff)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	// ctx parents every draft so Close can cancel them all
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionStore creates an empty store whose sessions expire after ttl idle.
func NewSessionStore(ttl time.Duration) *SessionStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create registers a new session.
func (st *SessionStore) Create() *Session {
	sess := newSession(st.now())

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get returns the session with id.
func (st *SessionStore) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	sess.touch(st.now())
	return sess, nil
}

// Begin starts a submission on sess under the store's lifetime.
func (st *SessionStore) Begin(sess *Session, role string) (uint64, context.Context) {
	return sess.Begin(st.ctx, role, st.now())
}

// Delete removes the session and cancels its in-flight draft.
func (st *SessionStore) Delete(id uuid.UUID) error {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return &ErrSessionNotFound{SessionID: id}
	}
	sess.close()
	return nil
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune drops sessions that have been idle longer than the TTL and returns
// how many were removed. Sessions with a draft in flight are kept.
func (st *SessionStore) Prune() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince(cutoff) {
			sess.close()
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run prunes every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := st.Prune(); n > 0 {
				log.Printf("[session] pruned %d idle session(s)", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close cancels every in-flight draft.
func (st *SessionStore) Close() {
	st.cancel()
}
