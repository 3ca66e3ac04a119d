package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envBinding ties a MATMUL_* variable to the flags that take precedence
// over it and to the configuration field it sets.
type envBinding struct {
	name  string
	flags []string
	set   func(c *AppConfig, raw string) error
}

// bind returns a setter that parses the raw value and stores it in the
// field selected by field.
func bind[T any](parse func(string) (T, error), field func(*AppConfig) *T) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func parseString(s string) (string, error) { return s, nil }

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func parseUint64(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

// parseBool also accepts "yes" and "no".
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

var envBindings = []envBinding{
	{"N", []string{"n"}, bind(strconv.Atoi, func(c *AppConfig) *int { return &c.Order })},
	{"MIN", []string{"min"}, bind(parseInt64, func(c *AppConfig) *int64 { return &c.Min })},
	{"MAX", []string{"max"}, bind(parseInt64, func(c *AppConfig) *int64 { return &c.Max })},
	{"SEED", []string{"seed"}, bind(parseUint64, func(c *AppConfig) *uint64 { return &c.Seed })},
	{"SWEEP", []string{"sweep"}, bind(strconv.Atoi, func(c *AppConfig) *int { return &c.Sweep })},
	{"TIMEOUT", []string{"timeout"}, bind(time.ParseDuration, func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"ALGO", []string{"algo"}, bind(parseString, func(c *AppConfig) *string { return &c.Algo })},
	{"OUTPUT", []string{"output", "o"}, bind(parseString, func(c *AppConfig) *string { return &c.OutputFile })},
	{"PLOT", []string{"plot"}, bind(parseString, func(c *AppConfig) *string { return &c.PlotFile })},
	{"PORT", []string{"port"}, bind(parseString, func(c *AppConfig) *string { return &c.Port })},
	{"LOG_LEVEL", []string{"log-level"}, bind(parseString, func(c *AppConfig) *string { return &c.LogLevel })},
	{"THEME", []string{"theme"}, bind(parseString, func(c *AppConfig) *string { return &c.Theme })},
	{"PRINT", []string{"print"}, bind(parseBool, func(c *AppConfig) *bool { return &c.PrintMatrices })},
	{"STRASSEN_PAD", []string{"strassen-pad"}, bind(parseBool, func(c *AppConfig) *bool { return &c.StrassenPad })},
	{"CONCURRENT", []string{"concurrent"}, bind(parseBool, func(c *AppConfig) *bool { return &c.Concurrent })},
	{"JSON", []string{"json"}, bind(parseBool, func(c *AppConfig) *bool { return &c.JSONOutput })},
	{"QUIET", []string{"quiet", "q"}, bind(parseBool, func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, bind(parseBool, func(c *AppConfig) *bool { return &c.NoColor })},
	{"SERVER", []string{"server"}, bind(parseBool, func(c *AppConfig) *bool { return &c.ServerMode })},
}

// explicitFlags returns the names of the flags given on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyEnvOverrides sets every field whose flags were not given from its
// MATMUL_* variable, so flags win over the environment, which wins over
// defaults. A variable set to the empty string counts for string fields
// only. Values that do not parse are ignored.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	given := explicitFlags(fs)
next:
	for _, b := range envBindings {
		for _, name := range b.flags {
			if given[name] {
				continue next
			}
		}
		raw, ok := os.LookupEnv(EnvPrefix + b.name)
		if !ok {
			continue
		}
		_ = b.set(config, raw)
	}
}
