package http

import (
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

const (
	appTitle  = "Enhanced Financial Tracker"
	aboutText = "Enhanced Financial Tracker v1.0"
)

type rowView struct {
	ID          string
	Description string
	Kind        string
	Amount      string
}

type tableView struct {
	Rows []rowView
}

type summaryView struct {
	Income   string
	Expenses string
	Balance  string
	Negative bool
}

type indexView struct {
	Title   string
	Table   tableView
	Summary summaryView
}

type createdView struct {
	Message string
	Table   tableView
	Summary summaryView
}

type dialogView struct {
	Title   string
	Message string
}

func (s *Server) tableView(entries []core.Transaction) tableView {
	rows := make([]rowView, 0, len(entries))
	for _, t := range entries {
		rows = append(rows, rowView{
			ID:          t.ID.String(),
			Description: t.Description,
			Kind:        t.Kind.String(),
			Amount:      core.FormatCurrency(s.currency, t.Amount),
		})
	}
	return tableView{Rows: rows}
}

func (s *Server) summaryView(sum core.Summary) summaryView {
	return summaryView{
		Income:   core.FormatCurrency(s.currency, sum.TotalIncome),
		Expenses: core.FormatCurrency(s.currency, sum.TotalExpenses),
		Balance:  core.FormatCurrency(s.currency, sum.Balance),
		Negative: sum.Balance.IsNegative(),
	}
}

func (s *Server) indexView(snap ledger.Snapshot) indexView {
	return indexView{
		Title:   appTitle,
		Table:   s.tableView(snap.Entries),
		Summary: s.summaryView(snap.Summary),
	}
}
