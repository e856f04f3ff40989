// internal/gateway/server.go

// Package gateway exposes the wizard over HTTP for the candidate portal
// frontend. Each authenticated candidate gets one wizard engine, keyed by the
// email claim in their bearer token.
package gateway

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carrier-portal/internal/common/auth"
	"carrier-portal/internal/common/config"
	"carrier-portal/internal/common/logger"
	"carrier-portal/internal/common/metrics"
	"carrier-portal/internal/common/observability"
	"carrier-portal/internal/notify"
	"carrier-portal/internal/wizard/engine"
	"carrier-portal/internal/wizard/progress"
	"carrier-portal/internal/wizard/submitter"
	"carrier-portal/internal/wizard/summary"
)

type Server struct {
	cfg      *config.Config
	logger   logger.Logger
	guard    *auth.Guard
	store    progress.Store
	submit   *submitter.Client
	summary  *summary.Service
	notifier notify.Notifier
	obs      *observability.Observability

	mu       sync.Mutex
	sessions map[string]*engine.Engine

	httpServer *http.Server
}

func NewServer(cfg *config.Config, guard *auth.Guard, store progress.Store, submit *submitter.Client, notifier notify.Notifier, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "gateway"}),
		guard:    guard,
		store:    store,
		submit:   submit,
		summary:  summary.NewService(submit, store, notifier, log),
		notifier: notifier,
		obs:      obs,
		sessions: make(map[string]*engine.Engine),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/wizard", s.withSession(s.handleView))
	mux.Handle("POST /api/wizard/edit", s.withSession(s.handleEdit))
	mux.Handle("POST /api/wizard/vins", s.withSession(s.handleAddVIN))
	mux.Handle("DELETE /api/wizard/vins/{index}", s.withSession(s.handleRemoveVIN))
	mux.Handle("POST /api/wizard/attachments", s.withSession(s.handleAttach))
	mux.Handle("POST /api/wizard/next", s.withSession(s.handleNext))
	mux.Handle("POST /api/wizard/prev", s.withSession(s.handlePrev))
	mux.Handle("POST /api/wizard/goto", s.withSession(s.handleGoToStep))
	mux.Handle("GET /api/wizard/summary", s.withSession(s.handleSummary))
	mux.Handle("POST /api/wizard/finalize", s.withSession(s.handleFinalize))

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("gateway listening", map[string]interface{}{"addr": s.httpServer.Addr})
	err := s.httpServer.ListenAndServe()
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// session resolves the engine for the request's bearer token, creating and
// starting one on first use.
func (s *Server) session(r *http.Request) (*engine.Engine, error) {
	token := auth.BearerToken(r)
	claims, err := s.guard.DecodeAndValidateToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if eng, ok := s.sessions[claims.Email]; ok {
		return eng, nil
	}

	eng := engine.New(engine.Config{
		Email:     claims.Email,
		Token:     token,
		Guard:     s.guard,
		Store:     s.store,
		Submitter: s.submit,
		Logger:    s.logger,
	})
	if err := eng.Start(r.Context()); err != nil {
		return nil, err
	}

	s.sessions[claims.Email] = eng
	metrics.WizardActiveSessions.Inc()
	return eng, nil
}

func (s *Server) dropSession(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[email]; ok {
		delete(s.sessions, email)
		metrics.WizardActiveSessions.Dec()
	}
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, eng *engine.Engine)

func (s *Server) withSession(next sessionHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eng, err := s.session(r)
		if err != nil {
			s.recordRequest(r, "denied")
			s.writeError(w, err)
			return
		}
		s.recordRequest(r, "ok")
		next(w, r, eng)
	})
}

func (s *Server) recordRequest(r *http.Request, status string) {
	if s.obs != nil {
		s.obs.RecordRequest(r.Context(), r.URL.Path, status)
	}
}
