// Package ui holds the console color themes of matmulbench. One theme is
// active per process; it is chosen at startup from the -theme and
// -no-color flags, NO_COLOR and whether stdout is a terminal.
package ui

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/fatih/color"
)

// Theme maps the roles of console text to ANSI escape codes. Every field of
// the "none" theme is empty, so painted text degrades to plain text.
type Theme struct {
	Name string
	// Primary marks algorithm names and flag names.
	Primary string
	// Secondary marks operation counts and defaults.
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// fg256 returns the escape code selecting color n of the xterm 256-color
// palette as foreground.
func fg256(n int) string { return fmt.Sprintf("\033[38;5;%dm", n) }

// newTheme builds a theme from xterm palette indexes, in the order
// primary, secondary, success, warning, error, info.
func newTheme(name string, primary, secondary, success, warning, failure, info int) Theme {
	return Theme{
		Name:      name,
		Primary:   fg256(primary),
		Secondary: fg256(secondary),
		Success:   fg256(success),
		Warning:   fg256(warning),
		Error:     fg256(failure),
		Info:      fg256(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

var (
	DarkTheme    = newTheme("dark", 39, 245, 82, 220, 196, 141)
	LightTheme   = newTheme("light", 27, 240, 28, 130, 124, 54)
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the theme names in alphabetical order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme activates t and keeps fatih/color in step with it.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
	color.NoColor = t.Name == NoColorTheme.Name
}

// SetTheme activates the theme called name, or the dark theme if there is
// none.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme activates the theme called name unless colors are off: noColor
// is set, NO_COLOR is present (https://no-color.org/) or fatih/color found
// at startup that stdout is not a color terminal.
func InitTheme(noColor bool, name string) {
	if _, set := os.LookupEnv("NO_COLOR"); set || noColor || color.NoColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}
