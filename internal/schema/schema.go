// SPDX-License-Identifier: Apache-2.0

// Package schema checks parsed response Documents against a CUE description
// of the sections and fields the dashboard binds to.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/tenderscope/tender-mcp/internal/response"
)

//go:embed evaluation.cue
var defaultSchema []byte

const (
	definitionPath = "#Evaluation"
	expectedPath   = "expected"
)

// Finding is a single schema violation.
type Finding struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report is the outcome of checking a Document. Missing lists expected
// sections that the document does not contain; they do not make the report
// invalid.
type Report struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
	Missing  []string  `json:"missing"`
}

// Checker validates Documents against a compiled schema. A Checker is not
// safe for concurrent use: CUE values share their runtime.
type Checker struct {
	ctx        *cue.Context
	definition cue.Value
	expected   []string
}

// New compiles the embedded default schema.
func New() (*Checker, error) {
	return Compile(defaultSchema, "evaluation.cue")
}

// Load compiles the schema at path. An empty path selects the embedded
// default.
func Load(path string) (*Checker, error) {
	if path == "" {
		return New()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", path, err)
	}
	return Compile(src, path)
}

// Compile builds a Checker from CUE source. The source must define
// #Evaluation; the expected list is optional.
func Compile(src []byte, filename string) (*Checker, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(src, cue.Filename(filename))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile schema %q: %w", filename, err)
	}

	def := root.LookupPath(cue.ParsePath(definitionPath))
	if !def.Exists() {
		return nil, fmt.Errorf("schema %q does not define %s", filename, definitionPath)
	}

	var expected []string
	if v := root.LookupPath(cue.ParsePath(expectedPath)); v.Exists() {
		if err := v.Decode(&expected); err != nil {
			return nil, fmt.Errorf("schema %q: invalid %s list: %w", filename, expectedPath, err)
		}
	}

	return &Checker{ctx: ctx, definition: def, expected: expected}, nil
}

// Expected returns the section names the schema expects.
func (c *Checker) Expected() []string {
	return append([]string(nil), c.expected...)
}

// Check validates doc. It never modifies doc and never fails: schema
// violations are reported as findings.
func (c *Checker) Check(doc *response.Document) Report {
	report := Report{Valid: true, Findings: []Finding{}, Missing: []string{}}

	for _, name := range c.expected {
		if !doc.Has(name) {
			report.Missing = append(report.Missing, name)
		}
	}

	data := c.ctx.Encode(doc.Map())
	err := c.definition.Unify(data).Validate(cue.Concrete(true))
	if err == nil {
		return report
	}

	report.Valid = false
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		report.Findings = append(report.Findings, Finding{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	sort.SliceStable(report.Findings, func(i, j int) bool {
		return report.Findings[i].Path < report.Findings[j].Path
	})
	return report
}
