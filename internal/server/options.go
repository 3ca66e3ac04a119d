package server

import (
	"log"
	"time"

	"github.com/agbru/matmulbench/internal/logging"
	"github.com/agbru/matmulbench/internal/service"
)

// Option configures a Server in NewServer.
type Option func(*Server)

// WithLogger replaces the server logger. A nil logger is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger logs through a standard library logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService replaces the benchmark service behind /multiply.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) { s.timeouts = timeouts }
}

// WithRateLimiter replaces the per-client limiter. The server stops it on
// shutdown.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		if rl != nil {
			s.rateLimiter = rl
		}
	}
}

func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) { s.securityConfig = config }
}

// WithMaxOrder caps the 'n' parameter of /multiply. Zero removes the cap.
// Apply it after WithSecurityConfig, which would otherwise overwrite it.
func WithMaxOrder(maxOrder int) Option {
	return func(s *Server) { s.securityConfig.MaxOrder = maxOrder }
}

// Timeouts bounds the lifetime of requests and of the server itself.
type Timeouts struct {
	// RequestTimeout bounds a single benchmark; past it /multiply answers 504.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	// WriteTimeout must outlast RequestTimeout.
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerTimeouts returns the timeouts used when none are configured.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  5 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    5*time.Minute + 30*time.Second,
		IdleTimeout:     2 * time.Minute,
	}
}
