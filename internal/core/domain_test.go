package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Income", Income, true},
		{"Expense", Expense, true},
		{" Expense ", Expense, true},
		{"", "", false},
		{"income", "", false},
		{"Transfer", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseKind(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%q expected (%q,%v), got (%q,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestNewTransactionDiscardsSign(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, k := range Kinds() {
		tx := NewTransaction("x", k, decimal.NewFromInt(-50), now)
		if tx.Amount.IsNegative() {
			t.Fatalf("%s: stored amount is negative: %s", k, tx.Amount)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("%s: expected 50, got %s", k, tx.Amount)
		}
		if tx.RecordedAt != now {
			t.Fatalf("recorded time not kept")
		}
	}
}

func TestNewTransactionUniqueIDs(t *testing.T) {
	a := NewTransaction("a", Income, decimal.NewFromInt(1), time.Now())
	b := NewTransaction("b", Income, decimal.NewFromInt(1), time.Now())
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %s twice", a.ID)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Description: "ok", Kind: Income, Amount: decimal.NewFromInt(1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Description: " ", Kind: Income, Amount: decimal.NewFromInt(1)}, ErrMissingField},
		{Transaction{Description: "a", Kind: "", Amount: decimal.NewFromInt(1)}, ErrMissingField},
		{Transaction{Description: "a", Kind: Expense, Amount: decimal.NewFromInt(-1)}, ErrInvalidAmount},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestSigned(t *testing.T) {
	in := Transaction{Kind: Income, Amount: decimal.NewFromInt(5)}
	out := Transaction{Kind: Expense, Amount: decimal.NewFromInt(5)}
	if !in.Signed().Equal(decimal.NewFromInt(5)) {
		t.Fatalf("income signed = %s", in.Signed())
	}
	if !out.Signed().Equal(decimal.NewFromInt(-5)) {
		t.Fatalf("expense signed = %s", out.Signed())
	}
}

func TestValidationErrors(t *testing.T) {
	mf := MissingFieldError()
	if !errors.Is(mf, ErrMissingField) || mf.Title != "Validation Error" || mf.Message != "All fields are required!" {
		t.Fatalf("unexpected missing field error: %+v", mf)
	}
	ia := InvalidAmountError()
	if !errors.Is(ia, ErrInvalidAmount) || ia.Title != "Invalid Input" || ia.Message != "Amount must be a number!" {
		t.Fatalf("unexpected invalid amount error: %+v", ia)
	}

	ve, ok := AsValidation(ErrInvalidAmount)
	if !ok || ve.Title != "Invalid Input" {
		t.Fatalf("sentinel not promoted: %+v %v", ve, ok)
	}
	if _, ok := AsValidation(errors.New("boom")); ok {
		t.Fatalf("unrelated error treated as validation error")
	}
}
