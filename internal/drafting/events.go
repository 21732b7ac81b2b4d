package drafting

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

// EventKind identifies a step of the retry state machine.
type EventKind string

const (
	// EventAttempt is emitted before each request is sent
	EventAttempt EventKind = "attempt"
	// EventThrottled is emitted for every 429. Delay is the backoff that follows,
	// zero when no attempts remain.
	EventThrottled EventKind = "throttled"
	// EventResolved is emitted once with the final result
	EventResolved EventKind = "resolved"
)

// Event describes progress of one invocation.
type Event struct {
	Kind      EventKind
	RequestID uuid.UUID
	// Attempt is the 1-based number of the request the event refers to;
	// for EventResolved it is the total number of requests made.
	Attempt int
	Delay   time.Duration
	Outcome types.DraftOutcome
	Elapsed time.Duration
}

// Observer receives events synchronously from the invoking goroutine.
// Implementations must not block.
type Observer interface {
	OnDraftEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnDraftEvent calls f(e).
func (f ObserverFunc) OnDraftEvent(e Event) {
	f(e)
}

type multiObserver []Observer

func (m multiObserver) OnDraftEvent(e Event) {
	for _, o := range m {
		if o != nil {
			o.OnDraftEvent(e)
		}
	}
}
