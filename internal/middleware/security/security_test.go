package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/log"
)

func TestHeadersMiddleware(t *testing.T) {
	h := NewHeadersMiddleware(DefaultHeadersConfig()).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, name := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rr.Header().Get(name) == "" {
			t.Errorf("header %s not set", name)
		}
	}
}

func TestIsSuspicious(t *testing.T) {
	d := NewDetector(log.Discard())
	cases := []struct {
		method, target string
		want           bool
	}{
		{http.MethodGet, "/", false},
		{http.MethodPost, "/transactions", false},
		{http.MethodGet, "/ui/summary", false},
		{http.MethodGet, "/.env", true},
		{http.MethodGet, "/static/../../etc/passwd", true},
		{http.MethodGet, "/?next=javascript:alert(1)", true},
		{"TRACE", "/", true},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.target, nil)
		if got := d.IsSuspicious(r); got != tc.want {
			t.Errorf("%s %s: got %v, want %v", tc.method, tc.target, got, tc.want)
		}
	}
}

func TestExtractClientIP(t *testing.T) {
	d := NewDetector(log.Discard())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "127.0.0.1:5000"
	r.Header.Set("X-Forwarded-For", "10.1.2.3, 127.0.0.1")
	if got := d.ExtractClientIP(r); got != "10.1.2.3" {
		t.Fatalf("trusted proxy: got %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.9:5000"
	r.Header.Set("X-Forwarded-For", "10.1.2.3")
	if got := d.ExtractClientIP(r); got != "192.168.1.9" {
		t.Fatalf("untrusted peer: got %q", got)
	}
}

func TestDetectorMiddlewareBlocks(t *testing.T) {
	d := NewDetector(log.Discard())
	h := d.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/.git/config", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if d.GetMetrics().BlockedRequests != 1 {
		t.Fatalf("blocked = %d", d.GetMetrics().BlockedRequests)
	}
}
