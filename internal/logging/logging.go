// SPDX-License-Identifier: Apache-2.0

// Package logging builds the zap logger shared by the CLI and the MCP server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger writing JSON to stderr. Stdout is left to
// command output and the MCP stdio transport. verbose forces debug level.
func New(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// DocumentFields summarizes a parse result for log entries.
func DocumentFields(sections, fields, inputBytes int) []zap.Field {
	return []zap.Field{
		zap.Int("sections", sections),
		zap.Int("fields", fields),
		zap.Int("input_bytes", inputBytes),
	}
}
