package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hako/durafmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	uptime := time.Since(s.appMetrics.started)
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    durafmt.Parse(uptime.Truncate(time.Second)).String(),
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}

// handleReady reports whether templates are loaded and the totals still
// agree with the ledger.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.session.Verify() {
		checks["ledger"] = "ok"
	} else {
		checks["ledger"] = "failed: totals differ from ledger"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application metrics in Prometheus text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.traceMiddleware.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	securityMetrics := s.securityDetector.GetMetrics()
	accepted := atomic.LoadInt64(&s.appMetrics.accepted)
	rejected := atomic.LoadInt64(&s.appMetrics.rejected)
	uptime := time.Since(s.appMetrics.started)

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_last_response_time_microseconds Duration of the most recent request\n")
	fmt.Fprintf(w, "# TYPE http_last_response_time_microseconds gauge\n")
	fmt.Fprintf(w, "http_last_response_time_microseconds %d\n\n", traceMetrics.LastResponseTimeUs)

	fmt.Fprintf(w, "# HELP transactions_total Transactions accepted into the ledger\n")
	fmt.Fprintf(w, "# TYPE transactions_total counter\n")
	fmt.Fprintf(w, "transactions_total %d\n\n", accepted)

	fmt.Fprintf(w, "# HELP transactions_rejected_total Submissions rejected by validation\n")
	fmt.Fprintf(w, "# TYPE transactions_rejected_total counter\n")
	fmt.Fprintf(w, "transactions_rejected_total %d\n\n", rejected)

	fmt.Fprintf(w, "# HELP ledger_entries Transactions currently held in the session\n")
	fmt.Fprintf(w, "# TYPE ledger_entries gauge\n")
	fmt.Fprintf(w, "ledger_entries %d\n\n", len(s.session.Snapshot().Entries))

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests blocked\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Not found").Write(w)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	s.writeTemplate(w, r, http.StatusOK, "index.html", s.indexView(s.session.Snapshot()))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Parse request body error",
			log.FieldError, err.Error(),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		BadRequestError("Malformed request").Write(w)
		return
	}

	tx, _, err := s.submitter.Submit(r.Context(), parser.TransactionForm())
	if err != nil {
		if ve, ok := core.AsValidation(err); ok {
			s.countRejected()
			ValidationErrorResponse(ve.Title, ve.Message).Write(w)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to record transaction",
			log.FieldError, err.Error(),
			log.FieldOperation, log.OpSubmit,
			log.FieldErrorType, log.ErrorTypeInternal)
		InternalServerError("Could not record transaction").Write(w)
		return
	}

	// Render from a fresh snapshot so concurrent submits never roll the
	// view back.
	snap := s.session.Snapshot()
	body, err := s.render("transaction_created", createdView{
		Message: fmt.Sprintf("Added %s: %s %s", tx.Kind, tx.Description, core.FormatCurrency(s.currency, tx.Amount)),
		Table:   s.tableView(snap.Entries),
		Summary: s.summaryView(snap.Summary),
	})
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err.Error(),
			log.FieldTemplate, "transaction_created")
		InternalServerError("Rendering failed").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerTransactionCreated(tx.ID.String(), len(snap.Entries)).
		TriggerFormReset().
		BodyHTML(body).
		Write(w)
}

// handleTransactionsTable renders the table partial.
func (s *Server) handleTransactionsTable(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	entries := s.session.Snapshot().Entries
	s.writeBody(w, r, http.StatusOK, "transactions_table", func() ([]byte, error) {
		return s.renderCached("transactions_table", len(entries), s.tableView(entries))
	})
}

// handleSummary renders the summary partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	snap := s.session.Snapshot()
	s.writeBody(w, r, http.StatusOK, "summary", func() ([]byte, error) {
		return s.renderCached("summary", len(snap.Entries), s.summaryView(snap.Summary))
	})
}

// handleAbout renders the Help > About dialog.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.writeTemplate(w, r, http.StatusOK, "dialog", dialogView{Title: "About", Message: aboutText})
}

// handleExit answers File > Exit and then asks the process to stop.
func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	s.logger.InfoContext(r.Context(), "Exit requested from menu", log.FieldOperation, log.OpShutdown)
	s.writeTemplate(w, r, http.StatusOK, "goodbye", dialogView{Title: appTitle, Message: "The tracker has been closed. You can close this tab."})
	s.requestExit()
}
