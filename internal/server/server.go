package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/logging"
	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/service"
)

// Server serves the benchmark API over HTTP.
type Server struct {
	factory        multiply.Factory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// route is one endpoint of the API, listed in the startup log.
type route struct {
	pattern string
	usage   string
	handler func(*Server) http.HandlerFunc
}

var routes = []route{
	{"/multiply", "GET /multiply?n=<order>&algo=<all|naive|strassen>&seed=<seed>&min=<min>&max=<max>",
		func(s *Server) http.HandlerFunc { return s.handleMultiply }},
	{"/health", "GET /health", func(s *Server) http.HandlerFunc { return s.handleHealth }},
	{"/algorithms", "GET /algorithms", func(s *Server) http.HandlerFunc { return s.handleAlgorithms }},
	{"/metrics", "GET /metrics", func(s *Server) http.HandlerFunc { return s.handleMetrics }},
}

// NewServer builds a server answering on cfg.Port with the algorithms of
// factory. Unless WithService is given, /multiply runs a MultiplyService
// limited to the configured maximum order.
func NewServer(factory multiply.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.service == nil {
		s.service = service.NewMultiplyService(s.factory, s.securityConfig.MaxOrder)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.Handler(),
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the API routes. Every request passes through security
// headers, rate limiting, logging and metrics, in that order.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, rt := range routes {
		h := s.metricsMiddleware(rt.handler(s))
		h = s.loggingMiddleware(h)
		h = RateLimitMiddleware(s.rateLimiter, h)
		mux.HandleFunc(rt.pattern, SecurityMiddleware(s.securityConfig, h))
	}
	return mux
}

// Start serves until SIGINT, SIGTERM or the end of ctx, then drains open
// requests within the shutdown timeout. It fails only if the listener
// cannot be opened or the drain does not finish.
func (s *Server) Start(ctx context.Context) error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	s.logger.Info("starting server",
		logging.String("addr", s.httpServer.Addr),
		logging.Int("max_order", s.securityConfig.MaxOrder))
	for _, rt := range routes {
		s.logger.Printf("  %s", rt.usage)
	}

	listenErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return apperrors.NewServerError("server failed to start", err)
	case sig := <-s.shutdownSignal:
		s.logger.Info("shutting down", logging.String("reason", sig.String()))
	case <-ctx.Done():
		s.logger.Info("shutting down", logging.String("reason", context.Cause(ctx).Error()))
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Info("server stopped")
	return nil
}
