package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

type (
	// Kind classifies a transaction and decides which total it moves.
	Kind string

	// Transaction is immutable once created. Amount is never negative;
	// the direction of its effect comes from Kind alone.
	Transaction struct {
		ID          uuid.UUID
		Description string
		Kind        Kind
		Amount      decimal.Decimal
		RecordedAt  time.Time
	}
)

// Kinds lists the selectable kinds in display order.
func Kinds() []Kind {
	return []Kind{Income, Expense}
}

// ParseKind maps a selector value to a Kind. Anything outside the two
// options reports ok=false and is treated as an absent selection.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.TrimSpace(s)) {
	case Income:
		return Income, true
	case Expense:
		return Expense, true
	default:
		return "", false
	}
}

// String returns the display label.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// NewTransaction builds a record from already validated parts. The amount's
// sign is discarded.
func NewTransaction(desc string, kind Kind, amount decimal.Decimal, now time.Time) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Description: desc,
		Kind:        kind,
		Amount:      amount.Abs(),
		RecordedAt:  now,
	}
}

// Validate checks the record invariants.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" || !t.Kind.Valid() {
		return ErrMissingField
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Signed returns the amount with the sign implied by Kind.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
