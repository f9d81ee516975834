package nonce

import "sync"

// Sequencer hands out strictly increasing transaction nonces for the single
// faucet account. It is the only component allowed to mutate the counter,
// which is seeded once at startup from the account's pending nonce on chain.
//
// The lock covers exactly the read-and-increment; it must never be held
// across a network round trip, or every in-flight request serializes behind
// chain latency.
type Sequencer struct {
	mu   sync.Mutex
	next uint64
}

// NewSequencer creates a sequencer starting at the given nonce.
func NewSequencer(start uint64) *Sequencer {
	return &Sequencer{next: start}
}

// Next returns the next nonce and advances the counter. Safe for concurrent
// use; no two callers ever receive the same value.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.next
	s.next++

	return n
}

// Current returns the next nonce that would be issued, without consuming it.
func (s *Sequencer) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.next
}
