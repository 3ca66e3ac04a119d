// Package logging is the structured logging facade of matmulbench. The HTTP
// server, the sweep runner and the application log through Logger, which is
// backed by zerolog in production and may wrap a standard log.Logger in
// tests or embedding programs.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is implemented by ZerologAdapter and StdLoggerAdapter.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	// Printf and Println log unstructured lines at info level.
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field { return Field{key, value} }
func Int(key string, value int) Field { return Field{key, value} }
func Uint64(key string, value uint64) Field { return Field{key, value} }
func Float64(key string, value float64) Field { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value} }

// ParseLevel accepts the zerolog level names, case-insensitively. An empty
// name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// Setup installs the global zerolog logger, which the multiply package logs
// through, and sets the global level. Entries are JSON lines when
// jsonOutput is set and console text otherwise.
func Setup(w io.Writer, level zerolog.Level, jsonOutput bool) {
	zerolog.SetGlobalLevel(level)
	zerolog.DurationFieldUnit = time.Millisecond
	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ZerologAdapter is a Logger writing through zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger returns a JSON logger on w whose entries carry a "component"
// field.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(w).With().Str("component", component).Timestamp().Logger())
}

func withFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e.Str(f.Key, v)
		case int:
			e.Int(f.Key, v)
		case int64:
			e.Int64(f.Key, v)
		case uint64:
			e.Uint64(f.Key, v)
		case float64:
			e.Float64(f.Key, v)
		case bool:
			e.Bool(f.Key, v)
		case time.Duration:
			e.Dur(f.Key, v)
		case error:
			e.AnErr(f.Key, v)
		default:
			e.Interface(f.Key, v)
		}
	}
	return e
}

func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	withFields(z.logger.Info(), fields).Msg(msg)
}

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	withFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	withFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// StdLoggerAdapter is a Logger writing "[LEVEL] message key=value ..."
// lines to a standard log.Logger.
type StdLoggerAdapter struct {
	logger *stdlog.Logger
}

func NewStdLoggerAdapter(logger *stdlog.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (s *StdLoggerAdapter) line(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	s.logger.Println(b.String())
}

func (s *StdLoggerAdapter) Info(msg string, fields ...Field) { s.line("INFO", msg, fields) }

func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) { s.line("DEBUG", msg, fields) }

func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.line("ERROR", fmt.Sprintf("%s: %v", msg, err), fields)
}

func (s *StdLoggerAdapter) Printf(format string, args ...any) { s.logger.Printf(format, args...) }

func (s *StdLoggerAdapter) Println(args ...any) { s.logger.Println(args...) }
