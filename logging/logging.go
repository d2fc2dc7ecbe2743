// Package logging bootstraps the zap logger cmd/reqlang uses for CLI
// diagnostics. The core packages (token, lexer, ast, parser, printer, eval)
// never import this package or log anything themselves — logging is purely
// an ambient concern of the command-line surface.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger, dropping to debug level when verbose
// is set.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
