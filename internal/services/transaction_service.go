package services

import (
	"context"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

// FormInput is the raw content of the transaction form. An empty Kind
// means nothing was selected.
type FormInput struct {
	Description string
	Kind        string
	Amount      string
}

// Recorder is the part of the session the controller writes to.
type Recorder interface {
	Record(t core.Transaction) (core.Summary, error)
}

// TransactionService turns form submissions into ledger entries.
type TransactionService struct {
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

func NewTransactionService(recorder Recorder, logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &TransactionService{
		recorder: recorder,
		logger:   logger.WithComponent(log.ComponentForm),
		now:      time.Now,
	}
}

// Submit validates in, records the transaction and returns it with the
// totals it produced. Rejections are *core.ValidationError and leave the
// session unchanged.
func (s *TransactionService) Submit(ctx context.Context, in FormInput) (core.Transaction, core.Summary, error) {
	desc := sanitizeInput(in.Description)
	kind, kindOK := core.ParseKind(in.Kind)

	// A blank amount is present but not a number; only "" is missing.
	if desc == "" || !kindOK || in.Amount == "" {
		s.logRejected(ctx, in, core.ErrMissingField)
		return core.Transaction{}, core.Summary{}, core.MissingFieldError()
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		s.logRejected(ctx, in, err)
		return core.Transaction{}, core.Summary{}, core.InvalidAmountError()
	}

	tx := core.NewTransaction(desc, kind, amount, s.now())
	sum, err := s.recorder.Record(tx)
	if err != nil {
		if ve, ok := core.AsValidation(err); ok {
			s.logRejected(ctx, in, err)
			return core.Transaction{}, core.Summary{}, ve
		}
		return core.Transaction{}, core.Summary{}, err
	}

	fields := log.NewFields().
		WithTransaction(tx.ID.String(), tx.Description, tx.Kind.String(), core.FormatAmount(tx.Amount)).
		WithOperation(log.OpSubmit)
	fields[log.FieldBalance] = core.FormatAmount(sum.Balance)
	s.logger.InfoContext(ctx, "Transaction recorded", fields.ToSlice()...)

	return tx, sum, nil
}

func (s *TransactionService) logRejected(ctx context.Context, in FormInput, err error) {
	s.logger.InfoContext(ctx, "Transaction rejected",
		log.FieldError, err.Error(),
		log.FieldErrorType, log.ErrorTypeValidation,
		log.FieldTxKind, in.Kind,
		log.FieldOperation, log.OpValidate)
}

var _ Recorder = (*ledger.Session)(nil)

// sanitizeInput drops control characters other than tab, newline and
// carriage return, then trims whitespace.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
