// Package app wires configuration, the algorithm registry and the output
// layers into the matmulbench command: a single benchmark, a sweep over
// orders, or the HTTP server.
package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/matmulbench/internal/cli"
)

// Build metadata, set at link time:
//
//	go build -ldflags="-X github.com/agbru/matmulbench/internal/app.Version=v1.0.0 -X github.com/agbru/matmulbench/internal/app.Commit=abc123 -X github.com/agbru/matmulbench/internal/app.BuildDate=2026-01-01T00:00:00Z"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args contain --version, -version or -V
// anywhere, so "matmulbench -n 64 --version" prints the version too.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the build metadata, the Go runtime and the CPU
// features that matter for the timings.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "matmulbench %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s (%d CPUs)\n", info.OS, info.Arch, info.NumCPU)
	if len(info.CPUFeatures) > 0 {
		fmt.Fprintf(out, "  CPU:        %s\n", strings.Join(info.CPUFeatures, ", "))
	}
}

// VersionData holds the build and runtime details of the binary.
type VersionData struct {
	Version     string   `json:"version"`
	Commit      string   `json:"commit"`
	BuildDate   string   `json:"build_date"`
	GoVersion   string   `json:"go_version"`
	OS          string   `json:"os"`
	Arch        string   `json:"arch"`
	NumCPU      int      `json:"num_cpu"`
	CPUFeatures []string `json:"cpu_features,omitempty"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		CPUFeatures: cli.CPUFeatures(),
	}
}
