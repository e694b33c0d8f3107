package http

import (
	"bytes"
	"fmt"
	"net/http"

	"fintrack/internal/log"
)

// render executes name into a buffer so a failing template never leaves a
// half-written response behind.
func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, fmt.Errorf("render %s: templates not loaded", name)
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// renderCached is render memoized per ledger version. The ledger only
// grows, so a fragment keyed by entry count never goes stale.
func (s *Server) renderCached(name string, version int, data any) ([]byte, error) {
	key := fmt.Sprintf("%s:%d", name, version)
	if b, ok := s.fragments.Get(key); ok {
		return b.([]byte), nil
	}
	b, err := s.render(name, data)
	if err != nil {
		return nil, err
	}
	s.fragments.SetDefault(key, b)
	return b, nil
}

// writeTemplate renders name and writes it with status. Failures are
// logged and answered with a 500 error div.
func (s *Server) writeTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	s.writeBody(w, r, status, name, func() ([]byte, error) { return s.render(name, data) })
}

func (s *Server) writeBody(w http.ResponseWriter, r *http.Request, status int, name string, build func() ([]byte, error)) {
	body, err := build()
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err.Error(),
			log.FieldTemplate, name,
			log.FieldErrorType, log.ErrorTypeInternal)
		InternalServerError("Rendering failed").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(body).Write(w)
}
