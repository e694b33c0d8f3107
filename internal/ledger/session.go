package ledger

import (
	"sync"

	"fintrack/internal/core"
)

// Snapshot is a consistent read of the session taken under one lock.
type Snapshot struct {
	Entries []core.Transaction
	Summary core.Summary
}

// Listener is called after each accepted transaction with the state that
// transaction produced. Listeners must not call Record.
type Listener func(t core.Transaction, s core.Summary)

// Session owns the ledger and the accumulator for the lifetime of the
// process. Every mutation and every snapshot happens under mu, so a record
// appears in the ledger and in the totals at the same instant.
type Session struct {
	mu        sync.Mutex
	ledger    Ledger
	summary   core.Summary
	listeners []Listener

	// notifyMu keeps listener calls in submission order without holding mu.
	notifyMu sync.Mutex
}

// NewSession returns an empty session with zero totals.
func NewSession() *Session {
	return &Session{}
}

// Record validates t, appends it and updates the totals exactly once.
// Invalid records leave the session untouched.
func (s *Session) Record(t core.Transaction) (core.Summary, error) {
	if err := t.Validate(); err != nil {
		return core.Summary{}, err
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.ledger.Append(t)
	s.summary.Apply(t)
	sum := s.summary
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(t, sum)
	}
	return sum, nil
}

// Subscribe registers fn for change notifications.
func (s *Session) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of the entries and totals.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Entries: s.ledger.Entries(), Summary: s.summary}
}

// Summary returns the current totals.
func (s *Session) Summary() core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Len returns the number of accepted transactions.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Len()
}

// Verify recomputes the totals from the ledger and reports whether they
// match the incrementally maintained ones.
func (s *Session) Verify() bool {
	snap := s.Snapshot()
	return core.Recompute(snap.Entries).Equal(snap.Summary) && snap.Summary.Consistent()
}
