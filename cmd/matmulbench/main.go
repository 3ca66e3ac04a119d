// Command matmulbench multiplies two random square matrices with the
// triple loop and with Strassen's algorithm and compares their running
// time and operation counts.
package main

import (
	"context"
	"os"

	"github.com/agbru/matmulbench/internal/app"
	apperrors "github.com/agbru/matmulbench/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdin, os.Stdout))
}
