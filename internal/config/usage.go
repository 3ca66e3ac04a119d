package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/agbru/matmulbench/internal/ui"
)

// setCustomUsage prints the flags of fs as an aligned, colored table,
// followed by their environment variable names.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// The theme is not initialised yet when flags fail to parse.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sMatrix Multiplication Benchmark%s\n", t.Bold, t.Reset)
		fmt.Fprintln(out, "Compares the naive triple loop with Strassen's algorithm on random square matrices.")
		fmt.Fprintf(out, "\n%sUsage:%s %s [flags]\n\n", t.Warning, t.Reset, fs.Name())

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			arg, usage := flag.UnquoteUsage(f)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				usage += fmt.Sprintf(" %s[%s]%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintf(tw, "  %s-%s %s%s\t%s\n", t.Primary, f.Name, arg, t.Reset, usage)
		})
		tw.Flush()

		vars := make([]string, len(envBindings))
		for i, b := range envBindings {
			vars[i] = EnvPrefix + b.name
		}
		fmt.Fprintf(out, "\n%sEnvironment:%s flags left unset are read from\n  %s\n\n", t.Warning, t.Reset, strings.Join(vars, " "))
	}
}
