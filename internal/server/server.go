// Package server exposes the triage engine over HTTP. The API is a
// thin JSON layer: every endpoint maps onto one engine operation and
// carries no state of its own.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/valter-silva-au/triagevault/internal/observability"
	"github.com/valter-silva-au/triagevault/internal/producer"
	"github.com/valter-silva-au/triagevault/internal/triage"
	"github.com/valter-silva-au/triagevault/internal/vault"
	"github.com/valter-silva-au/triagevault/pkg/models"
)

// Logger receives server lifecycle and request failure messages.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Server wraps the HTTP listener and the engine components it serves.
type Server struct {
	addr      string
	vault     *vault.Vault
	router    *triage.Router
	metrics   observability.Aggregator
	alerts    observability.AlertEngine
	simulator *producer.Simulator
	owner     string
	business  string
	logger    Logger
	clock     func() time.Time

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// Option customizes server construction.
type Option func(*Server)

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIdentity sets the owner and business names used by vault init
// and the dashboard header.
func WithIdentity(owner, business string) Option {
	return func(s *Server) {
		if owner != "" {
			s.owner = owner
		}
		if business != "" {
			s.business = business
		}
	}
}

// New prepares a server on the given address. The components are
// shared with the CLI; the server owns none of them.
func New(addr string, v *vault.Vault, router *triage.Router, metrics observability.Aggregator, alerts observability.AlertEngine, sim *producer.Simulator, opts ...Option) *Server {
	s := &Server{
		addr:      addr,
		vault:     v,
		router:    router,
		metrics:   metrics,
		alerts:    alerts,
		simulator: sim,
		owner:     "Owner",
		business:  "My Business",
		logger:    nopLogger{},
		clock:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start binds the TCP listener and begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = listener

	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if ctx != nil {
		server.BaseContext = func(net.Listener) context.Context { return ctx }
	}
	s.server = server

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("serve error: %v", err)
		}
	}()
	s.logger.Printf("listening on %s", listener.Addr().String())
	return nil
}

// Shutdown stops accepting new connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.server = nil
	s.listener = nil
	return nil
}

// Addr returns the bound TCP address once the server has started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler builds the route table. Exposed so tests can drive the API
// through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/vault/status", s.handleVaultStatus)
	mux.HandleFunc("POST /api/vault/init", s.handleVaultInit)

	mux.HandleFunc("GET /api/needs-action", s.handleListPending)
	mux.HandleFunc("POST /api/needs-action/process", s.handleProcess)
	mux.HandleFunc("POST /api/needs-action/process-all", s.handleProcessAll)

	mux.HandleFunc("GET /api/approvals", s.handleListApprovals)
	mux.HandleFunc("POST /api/approvals/{id}/approve", s.handleApprove)
	mux.HandleFunc("POST /api/approvals/{id}/reject", s.handleReject)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/dashboard/refresh", s.handleDashboardRefresh)

	mux.HandleFunc("GET /api/handbook", s.handleGetHandbook)
	mux.HandleFunc("PUT /api/handbook", s.handlePutHandbook)
	mux.HandleFunc("POST /api/handbook/validate", s.handleValidateHandbook)

	mux.HandleFunc("POST /api/simulate/email", s.handleSimulateEmail)
	mux.HandleFunc("POST /api/simulate/batch", s.handleSimulateBatch)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps engine sentinel errors onto HTTP statuses.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, triage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vault.ErrNoHandbook):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("empty body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func (s *Server) computeMetrics(w http.ResponseWriter) (*models.Metrics, bool) {
	m, err := s.metrics.Compute()
	if err != nil {
		s.writeEngineError(w, err)
		return nil, false
	}
	return m, true
}
