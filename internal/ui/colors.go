package ui

import "github.com/fatih/color"

// The Color functions read the active theme on every call, so text built
// after a theme change picks it up.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Status painters for the progress line. fatih/color turns them off
// together with the theme.
var (
	okPainter   = color.New(color.FgGreen, color.Bold)
	failPainter = color.New(color.FgRed, color.Bold)
	notePainter = color.New(color.FgYellow)
)

func OK(s string) string   { return okPainter.Sprint(s) }
func Fail(s string) string { return failPainter.Sprint(s) }
func Note(s string) string { return notePainter.Sprint(s) }
