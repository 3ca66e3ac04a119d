// Package testutil provides helpers shared by the console-output tests.
package testutil

import "regexp"

var (
	// ansiRegex matches CSI escape sequences (ESC [ ... letter).
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

	// timingRegex matches the elapsed-time renderings printed by the CLI,
	// e.g. "12.345 ms", "1.2ms" or "850µs".
	timingRegex = regexp.MustCompile(`\d+(\.\d+)?\s?(ns|µs|us|ms|s)\b`)
)

// StripANSI removes ANSI escape codes from s so assertions can match
// colored output.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// MaskTimings replaces every elapsed-time value in s with "<t>". Timings
// vary between runs and would otherwise make output comparisons flaky.
func MaskTimings(s string) string {
	return timingRegex.ReplaceAllString(s, "<t>")
}
