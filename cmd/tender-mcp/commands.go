// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tenderscope/tender-mcp/internal/render"
	"github.com/tenderscope/tender-mcp/internal/response"
	"github.com/tenderscope/tender-mcp/internal/schema"
	"github.com/tenderscope/tender-mcp/internal/tool"
)

var (
	errFieldNotFound = errors.New("field not found")
	errCheckFailed   = errors.New("response does not match the evaluation schema")
)

func newParseCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a response and print the nested document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := a.parseInput(cmd, path)
			if err != nil {
				return err
			}
			out, err := render.Encode(doc, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: "+strings.Join(render.Formats, ", "))
	return cmd
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <file|-> <section> <field>",
		Short: "Print a single field value",
		Long: `Print the value stored at section/field. Names are normalized the same way
as the parser normalizes them, so "BASIC INFORMATION" and "BASIC_INFORMATION"
are equivalent. A missing field exits with an error; a field whose value is
"Not found" prints that text.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.parseInput(cmd, args[0])
			if err != nil {
				return err
			}
			v := doc.Lookup(args[1], args[2])
			if !v.Present() {
				return fmt.Errorf("%w: %s / %s", errFieldNotFound, response.Normalize(args[1]), response.Normalize(args[2]))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return err
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Check a response against the evaluation schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			if schemaPath == "" {
				schemaPath = a.cfg.Schema.Path
			}
			checker, err := schema.Load(schemaPath)
			if err != nil {
				return err
			}
			doc, err := a.parseInput(cmd, path)
			if err != nil {
				return err
			}

			report := checker.Check(doc)
			out := cmd.OutOrStdout()
			for _, name := range report.Missing {
				fmt.Fprintf(out, "missing section: %s\n", name)
			}
			for _, f := range report.Findings {
				fmt.Fprintf(out, "invalid: %s: %s\n", f.Path, f.Message)
			}
			if !report.Valid {
				return errCheckFailed
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a CUE schema defining #Evaluation (default: embedded)")
	return cmd
}

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [file|-]",
		Short: "Show how each line of a response is classified",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := a.readInput(cmd, path)
			if err != nil {
				return err
			}
			explain(cmd, raw)
			return nil
		},
	}
}

// explain prints one row per non-blank line: the section it belongs to and
// the grammar that matched it, "header" for section headers, or "skip".
func explain(cmd *cobra.Command, raw string) {
	out := cmd.OutOrStdout()
	fields := response.NewFieldParser()

	section := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if response.IsHeader(line) {
			section = response.Normalize(strings.TrimSuffix(strings.TrimSpace(line), ":"))
			fmt.Fprintf(out, "%-24s %-8s %s\n", section, "header", line)
			continue
		}
		if section == "" {
			fmt.Fprintf(out, "%-24s %-8s %s\n", "-", "skip", line)
			continue
		}
		m, ok := fields.MatchLine(line)
		if !ok {
			fmt.Fprintf(out, "%-24s %-8s %s\n", section, "skip", line)
			continue
		}
		fmt.Fprintf(out, "%-24s %-8s %s = %q\n", section, m.Grammar, m.Field.Name, m.Field.Value)
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := schema.Load(a.cfg.Schema.Path)
			if err != nil {
				return err
			}
			server := tool.NewServer(tool.NewHandlers(a.cfg.MaxInputBytes, checker, a.logger))

			a.logger.Info("starting MCP server", zap.String("transport", "stdio"), zap.Int("max_input_bytes", a.cfg.MaxInputBytes))
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
