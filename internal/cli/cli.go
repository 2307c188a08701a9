// Package cli implements the zklens commands. Each command loads the project
// configuration once at entry and passes it explicitly into the operations
// that need it.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// NewLogger builds the command-line logger.
func NewLogger() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// resolveRoot turns an optional path argument into an absolute project root.
// An empty path means the current directory.
func resolveRoot(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("path does not exist: %s", abs)
	}
	return abs, nil
}
