package multiply

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Phase identifies where in its lifecycle a run is.
type Phase int

const (
	// PhaseStarted is emitted just before the multiplication begins.
	PhaseStarted Phase = iota
	// PhaseFinished is emitted once the multiplication returned.
	PhaseFinished
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// RunEvent describes a lifecycle transition of one algorithm run.
type RunEvent struct {
	// Index distinguishes concurrent runs of different algorithms.
	Index     int
	Algorithm string
	Order     int
	Phase     Phase
	// Stats and Err are only meaningful for PhaseFinished.
	Stats Stats
	Err   error
}

// RunObserver receives run lifecycle events.
type RunObserver interface {
	OnRunEvent(ev RunEvent)
}

// RunSubject fans events out to registered observers.
// A nil *RunSubject is valid and drops every event.
type RunSubject struct {
	mu        sync.RWMutex
	observers []RunObserver
}

// NewRunSubject returns an empty subject.
func NewRunSubject() *RunSubject {
	return &RunSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *RunSubject) Register(o RunObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Len returns the number of registered observers.
func (s *RunSubject) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Notify delivers ev to every observer in registration order.
func (s *RunSubject) Notify(ev RunEvent) {
	if s == nil {
		return
	}
	s.mu.RLock()
	observers := make([]RunObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()
	for _, o := range observers {
		o.OnRunEvent(ev)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards events to a channel, typically consumed by the
// CLI progress display.
type ChannelObserver struct {
	channel chan<- RunEvent
}

// NewChannelObserver creates an observer that sends to ch. A nil channel
// discards events.
func NewChannelObserver(ch chan<- RunEvent) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// OnRunEvent implements RunObserver. The send never blocks; when the channel
// is full the event is dropped.
func (o *ChannelObserver) OnRunEvent(ev RunEvent) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- ev:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs run events: starts and successful runs at debug
// level, failures at error level.
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver creates an observer that logs to logger.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnRunEvent implements RunObserver.
func (o *LoggingObserver) OnRunEvent(ev RunEvent) {
	switch ev.Phase {
	case PhaseStarted:
		o.logger.Debug().
			Int("index", ev.Index).
			Str("algo", ev.Algorithm).
			Int("order", ev.Order).
			Msg("multiplication started")
	case PhaseFinished:
		if ev.Err != nil {
			o.logger.Error().
				Err(ev.Err).
				Str("algo", ev.Algorithm).
				Int("order", ev.Order).
				Msg("multiplication failed")
			return
		}
		o.logger.Debug().
			Str("algo", ev.Algorithm).
			Int("order", ev.Order).
			Uint64("additions", ev.Stats.Additions).
			Uint64("multiplications", ev.Stats.Multiplications).
			Float64("elapsed_ms", ev.Stats.ElapsedMillis()).
			Msg("multiplication finished")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer
// ─────────────────────────────────────────────────────────────────────────────

var (
	scalarOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matmul_scalar_operations_total",
			Help: "Scalar operations counted by the algorithms, by kind",
		},
		[]string{"algorithm", "kind"},
	)
	lastOrder = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "matmul_last_order",
			Help: "Order of the most recent successful multiplication",
		},
		[]string{"algorithm"},
	)
)

// MetricsObserver exports the operation counts of finished runs to
// Prometheus.
type MetricsObserver struct{}

// NewMetricsObserver creates a metrics observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnRunEvent implements RunObserver.
func (o *MetricsObserver) OnRunEvent(ev RunEvent) {
	if ev.Phase != PhaseFinished || ev.Err != nil {
		return
	}
	scalarOperationsTotal.WithLabelValues(ev.Algorithm, "addition").Add(float64(ev.Stats.Additions))
	scalarOperationsTotal.WithLabelValues(ev.Algorithm, "multiplication").Add(float64(ev.Stats.Multiplications))
	lastOrder.WithLabelValues(ev.Algorithm).Set(float64(ev.Order))
}
