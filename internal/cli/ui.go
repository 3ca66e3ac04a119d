// Package cli implements the console side of matmulbench: the order
// prompt, matrix and statistics rendering, the text report and the spinner
// shown while the algorithms run.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/matmulbench/internal/multiply"
	"github.com/agbru/matmulbench/internal/ui"
)

// FormatExecutionDuration formats a duration for display: microseconds
// below a millisecond, milliseconds below a second, time.Duration's own
// rendering otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatMillis renders d as fractional milliseconds, the unit used by the
// statistics blocks and the report.
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d.Nanoseconds())/1e6)
}

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner line.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 20
)

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.ColorReset() }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.ColorRed() }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.ColorGreen() }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.ColorYellow() }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.ColorBlue() }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.ColorMagenta() }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.ColorCyan() }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.ColorBold() }

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState tracks which algorithms are running and how many have
// finished. Multiplications report no intermediate progress, so completion
// is counted per algorithm.
type ProgressState struct {
	mu       sync.Mutex
	total    int
	running  map[int]string
	finished int
	failed   int
	start    time.Time
}

// NewProgressState creates a tracker for total algorithms.
func NewProgressState(total int) *ProgressState {
	return &ProgressState{
		total:   total,
		running: make(map[int]string),
		start:   time.Now(),
	}
}

// Apply records a lifecycle event.
func (ps *ProgressState) Apply(ev multiply.RunEvent) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	switch ev.Phase {
	case multiply.PhaseStarted:
		ps.running[ev.Index] = ev.Algorithm
	case multiply.PhaseFinished:
		delete(ps.running, ev.Index)
		ps.finished++
		if ev.Err != nil {
			ps.failed++
		}
	}
}

// Fraction returns the share of algorithms that have finished.
func (ps *ProgressState) Fraction() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.total <= 0 {
		return 0
	}
	return float64(ps.finished) / float64(ps.total)
}

// Summary renders the spinner suffix.
func (ps *ProgressState) Summary() string {
	ps.mu.Lock()
	running := make([]string, 0, len(ps.running))
	for i := 0; i < ps.total; i++ {
		if name, ok := ps.running[i]; ok {
			running = append(running, name)
		}
	}
	finished, total := ps.finished, ps.total
	elapsed := time.Since(ps.start)
	ps.mu.Unlock()

	frac := 0.0
	if total > 0 {
		frac = float64(finished) / float64(total)
	}
	current := "waiting"
	if len(running) > 0 {
		current = "running " + strings.Join(running, ", ")
	}
	return fmt.Sprintf(" %s [%s] %d/%d done, %s", current, progressBar(frac, ProgressBarWidth), finished, total, FormatExecutionDuration(elapsed))
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress shows a spinner on out while the algorithms run. It
// consumes events until the channel is closed, then prints a final summary
// line. It is meant to run in its own goroutine and calls wg.Done on exit.
func DisplayProgress(wg *sync.WaitGroup, events <-chan multiply.RunEvent, numAlgorithms int, out io.Writer) {
	defer wg.Done()
	if numAlgorithms <= 0 {
		for range events { // drain
		}
		return
	}

	state := NewProgressState(numAlgorithms)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(state.Summary())
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				s.Stop()
				spinnerStopped = true
				state.mu.Lock()
				finished, failed, elapsed := state.finished, state.failed, time.Since(state.start)
				state.mu.Unlock()
				status := ui.OK("done")
				switch {
				case failed > 0:
					status = ui.Fail(fmt.Sprintf("%d failed", failed))
				case finished < numAlgorithms:
					status = ui.Note(fmt.Sprintf("%d not started", numAlgorithms-finished))
				}
				fmt.Fprintf(out, "Progress: [%s] %d/%d algorithm(s) finished in %s, %s\n",
					progressBar(1.0, ProgressBarWidth), finished, numAlgorithms, FormatExecutionDuration(elapsed), status)
				return
			}
			state.Apply(ev)
			s.UpdateSuffix(state.Summary())
		case <-ticker.C:
			s.UpdateSuffix(state.Summary())
		}
	}
}
