package core

import "github.com/shopspring/decimal"

// Summary holds the running totals. The zero value is a valid empty summary.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// Apply folds one accepted transaction into the totals.
func (s *Summary) Apply(t Transaction) {
	switch t.Kind {
	case Expense:
		s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
	case Income:
		s.TotalIncome = s.TotalIncome.Add(t.Amount)
	default:
		return
	}
	s.Balance = s.Balance.Add(t.Signed())
}

// Recompute sums entries from scratch.
func Recompute(entries []Transaction) Summary {
	var s Summary
	for _, t := range entries {
		s.Apply(t)
	}
	return s
}

// Equal compares totals by value, ignoring decimal scale.
func (s Summary) Equal(o Summary) bool {
	return s.TotalIncome.Equal(o.TotalIncome) &&
		s.TotalExpenses.Equal(o.TotalExpenses) &&
		s.Balance.Equal(o.Balance)
}

// Consistent reports whether Balance == TotalIncome - TotalExpenses.
func (s Summary) Consistent() bool {
	return s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpenses))
}
