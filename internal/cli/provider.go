package cli

import apperrors "github.com/agbru/matmulbench/internal/errors"

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current
// theme, so error status lines are colored like the rest of the output.
type CLIColorProvider struct{}

// Yellow returns the warning color of the current theme.
func (c CLIColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset code of the current theme.
func (c CLIColorProvider) Reset() string { return ColorReset() }
