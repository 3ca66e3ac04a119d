// Package multiply implements the two square-matrix multiplication
// algorithms compared by matmulbench, the classical triple loop and
// Strassen's recursive decomposition, and exposes them behind a common
// Algorithm interface.
//
// The core multipliers are single-threaded and stateless between calls: each
// top-level call returns a fresh Stats value. The Algorithm decorator adds
// the cross-cutting concerns (tracing, metrics, logging, observers) around
// them without touching the counts.
package multiply

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/matmulbench/internal/matrix"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matmul_runs_total",
			Help: "The total number of matrix multiplications processed",
		},
		[]string{"algorithm", "status"},
	)
	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matmul_run_duration_seconds",
			Help:    "The duration of matrix multiplications in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		},
		[]string{"algorithm"},
	)
)

// Algorithm is the interface the orchestration layer uses to drive a
// multiplication algorithm.
type Algorithm interface {
	// Run multiplies a by b. Lifecycle events are sent to events when it is
	// non-nil, tagged with index so a consumer can tell algorithms apart.
	Run(ctx context.Context, events chan<- RunEvent, index int, a, b *matrix.Matrix) (Product, error)

	// RunWithObservers is like Run but notifies every observer registered on
	// subject.
	RunWithObservers(ctx context.Context, subject *RunSubject, index int, a, b *matrix.Matrix) (Product, error)

	// Name returns the display name of the algorithm.
	Name() string
}

// coreMultiplier is a bare algorithm without any instrumentation.
type coreMultiplier interface {
	run(a, b *matrix.Matrix) (Product, error)
	Name() string
}

// instrumented decorates a coreMultiplier with tracing, run metrics and
// observer notification.
type instrumented struct {
	core coreMultiplier
}

// NewAlgorithm wraps core into an Algorithm. It panics if core is nil.
func NewAlgorithm(core coreMultiplier) Algorithm {
	if core == nil {
		panic("multiply: the core multiplier cannot be nil")
	}
	return &instrumented{core: core}
}

// Name delegates to the wrapped multiplier.
func (c *instrumented) Name() string {
	return c.core.Name()
}

// Run notifies the global zerolog logger, the operation counters and, when
// events is non-nil, the events channel.
func (c *instrumented) Run(ctx context.Context, events chan<- RunEvent, index int, a, b *matrix.Matrix) (Product, error) {
	subject := NewRunSubject()
	subject.Register(NewLoggingObserver(log.Logger))
	subject.Register(NewMetricsObserver())
	if events != nil {
		subject.Register(NewChannelObserver(events))
	}
	return c.RunWithObservers(ctx, subject, index, a, b)
}

// RunWithObservers executes the multiplication. The context is only checked
// before the run starts: a multiplication, once begun, runs to completion.
func (c *instrumented) RunWithObservers(ctx context.Context, subject *RunSubject, index int, a, b *matrix.Matrix) (product Product, err error) {
	tracer := otel.Tracer("multiply")
	ctx, span := tracer.Start(ctx, "Multiply")
	defer span.End()

	order := 0
	if a != nil {
		order = a.Order()
	}
	name := c.core.Name()
	span.SetAttributes(attribute.String("algorithm", name), attribute.Int("order", order))

	subject.Notify(RunEvent{Index: index, Algorithm: name, Order: order, Phase: PhaseStarted})

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		wall := time.Since(start)
		runsTotal.WithLabelValues(name, status).Inc()
		runDuration.WithLabelValues(name).Observe(wall.Seconds())

		subject.Notify(RunEvent{
			Index:     index,
			Algorithm: name,
			Order:     order,
			Phase:     PhaseFinished,
			Stats:     product.Stats,
			Err:       err,
		})
	}()

	if err = ctx.Err(); err != nil {
		return Product{}, err
	}
	return c.core.run(a, b)
}
