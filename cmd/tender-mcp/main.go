// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tenderscope/tender-mcp/internal/config"
	"github.com/tenderscope/tender-mcp/internal/logging"
	"github.com/tenderscope/tender-mcp/internal/response"
)

// app carries global flags and the state built from them before a
// subcommand runs.
type app struct {
	configPath string
	verbose    bool
	maxBytes   int

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tender-mcp",
		Short: "Parse tender evaluation responses into queryable documents",
		Long: `tender-mcp turns the text returned by the tender evaluation service into a
nested document of normalized section and field names.

Input looks like:

  BASIC INFORMATION:
  1. Name of Party: Acme Corp
  - PAN: Not found

and is read from a file argument or from stdin when the argument is "-".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVar(&a.maxBytes, "max-bytes", 0, "Reject input larger than this many bytes (default from config)")

	rootCmd.AddCommand(
		newParseCmd(a),
		newLookupCmd(a),
		newCheckCmd(a),
		newExplainCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-bytes") {
		cfg.MaxInputBytes = a.maxBytes
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// readInput reads the response text from path, or stdin for "-", and runs it
// through the intake checks.
func (a *app) readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	raw, err := response.Receive(data, a.cfg.MaxInputBytes)
	if err != nil {
		return "", fmt.Errorf("rejected input %q: %w", path, err)
	}
	return raw, nil
}

// parseInput reads and parses the response text at path.
func (a *app) parseInput(cmd *cobra.Command, path string) (*response.Document, error) {
	raw, err := a.readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc := response.Parse(raw)
	a.logger.Debug("parsed tender response", logging.DocumentFields(doc.Len(), doc.FieldCount(), len(raw))...)
	return doc, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
