package drafting

import "sync/atomic"

// Sequencer enforces last-call-wins for a caller that may start a new
// invocation before the previous one resolves. Each invocation takes a number
// from Next; only a resolution whose number is still the latest may be applied.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues the next sequence number, superseding all earlier ones.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Latest returns the most recently issued sequence number (0 if none).
func (s *Sequencer) Latest() uint64 {
	return s.latest.Load()
}

// IsLatest reports whether seq is the most recently issued number.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && s.latest.Load() == seq
}
