package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestBodyParser_Form(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("description=Salary&type=Income&amount=1000"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.IsJSON() {
		t.Error("form body reported as JSON")
	}
	in := p.TransactionForm()
	if in.Description != "Salary" || in.Kind != "Income" || in.Amount != "1000" {
		t.Errorf("TransactionForm() = %+v", in)
	}
}

func TestRequestBodyParser_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"description":"Rent","type":"Expense","amount":300.5}`))
	req.Header.Set("Content-Type", "application/json")

	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsJSON() {
		t.Error("JSON body not detected")
	}
	in := p.TransactionForm()
	if in.Description != "Rent" || in.Kind != "Expense" || in.Amount != "300.5" {
		t.Errorf("TransactionForm() = %+v", in)
	}
}

func TestRequestBodyParser_MissingType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("description=x&amount=1"))
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := p.TransactionForm().Kind; got != "" {
		t.Errorf("Kind = %q, want empty", got)
	}
}

func TestRequestBodyParser_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"description":`))
	req.Header.Set("Content-Type", "application/json")
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if err := p.Parse(); err == nil {
		t.Fatal("second Parse() should return the same error")
	}
}

func TestRequireMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		allowed []string
		wantNil bool
	}{
		{"matching method", http.MethodPost, []string{http.MethodPost}, true},
		{"non-matching method", http.MethodGet, []string{http.MethodPost}, false},
		{"one of multiple", http.MethodHead, []string{http.MethodGet, http.MethodHead}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			result := RequireMethod(req, tt.allowed...)
			if (result == nil) != tt.wantNil {
				t.Errorf("RequireMethod() = %v, wantNil %v", result, tt.wantNil)
			}
		})
	}
}
