package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/middleware/compress"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
	appweb "fintrack/web"
)

// Submitter is the form controller.
type Submitter interface {
	Submit(ctx context.Context, in services.FormInput) (core.Transaction, core.Summary, error)
}

// SessionReader gives the view layer read access to the session.
type SessionReader interface {
	Snapshot() ledger.Snapshot
	Verify() bool
	Subscribe(fn ledger.Listener)
}

// Options configures NewServer. Zero values fall back to defaults.
type Options struct {
	Addr               string
	CurrencySymbol     string
	RateLimitPerMinute int
	Logger             *log.Logger

	// TemplatesFS and StaticFS default to the embedded web assets.
	TemplatesFS fs.FS
	StaticFS    fs.FS
}

// appMetrics holds counters exposed on /metrics.
type appMetrics struct {
	accepted int64
	rejected int64
	started  time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	fragments *cache.Cache
	submitter Submitter
	session   SessionReader
	currency  string
	logger    *log.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	appMetrics       appMetrics

	exitRequested chan struct{}
	exitOnce      sync.Once
	shutdownOnce  sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options, submitter Submitter, session SessionReader) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = core.DefaultCurrencySymbol
	}
	if opts.TemplatesFS == nil {
		opts.TemplatesFS = appweb.TemplatesFS
	}
	if opts.StaticFS == nil {
		opts.StaticFS = appweb.StaticFS
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		fragments:        cache.New(5*time.Minute, 10*time.Minute),
		submitter:        submitter,
		session:          session,
		currency:         opts.CurrencySymbol,
		logger:           logger,
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		securityDetector: security.NewDetector(opts.Logger),
		appMetrics:       appMetrics{started: time.Now()},
		exitRequested:    make(chan struct{}),
	}
	s.traceMiddleware = trace.NewMiddleware(opts.Logger, s.securityDetector.ExtractClientIP)
	session.Subscribe(func(core.Transaction, core.Summary) {
		s.countAccepted()
		s.fragments.Flush()
	})

	t, err := parseTemplates(opts.TemplatesFS)
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err.Error(), log.FieldComponent, log.ComponentTemplate)
	}
	s.templates = t

	if sub, err := fs.Sub(opts.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(compress.Middleware(static)))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err.Error())
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/transactions", s.handleCreateTransaction)
	mux.HandleFunc("/ui/transactions", s.handleTransactionsTable)
	mux.HandleFunc("/ui/summary", s.handleSummary)
	mux.HandleFunc("/ui/about", s.handleAbout)
	mux.HandleFunc("/exit", s.handleExit)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, s.onRateLimit)(handler)
	handler = s.securityDetector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)
	s.Handler = handler

	return s
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"kinds": core.Kinds,
	}).ParseFS(fsys, "templates/*.html")
}

// ExitRequested is closed when the user picks File > Exit.
func (s *Server) ExitRequested() <-chan struct{} {
	return s.exitRequested
}

func (s *Server) requestExit() {
	s.exitOnce.Do(func() { close(s.exitRequested) })
}

// Shutdown stops background goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path,
		log.FieldComponent, log.ComponentRateLimit)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.").
		Header("Retry-After", "60").
		Write(w)
}

func (s *Server) countAccepted() { atomic.AddInt64(&s.appMetrics.accepted, 1) }
func (s *Server) countRejected() { atomic.AddInt64(&s.appMetrics.rejected, 1) }
