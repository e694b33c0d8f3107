// Package ledger holds the session state of the tracker: the append-only
// list of accepted transactions and the running totals derived from it.
package ledger

import (
	"fintrack/internal/core"
)

// Ledger is an ordered, append-only sequence of transactions. It is not
// safe for concurrent use on its own; Session guards it.
type Ledger struct {
	entries []core.Transaction
}

// Append adds t at the end.
func (l *Ledger) Append(t core.Transaction) {
	l.entries = append(l.entries, t)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []core.Transaction {
	copied := make([]core.Transaction, len(l.entries))
	copy(copied, l.entries)
	return copied
}
