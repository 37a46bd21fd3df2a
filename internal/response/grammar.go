// SPDX-License-Identifier: Apache-2.0

package response

import "regexp"

// LineGrammar recognises one shape of "label: value" line.
type LineGrammar interface {
	// Match returns the raw label and value captured from line.
	Match(line string) (label, value string, ok bool)
	Name() string
}

// patternGrammar is a LineGrammar backed by a regexp with two capture groups:
// the label and the value.
type patternGrammar struct {
	name    string
	pattern *regexp.Regexp
}

func (g patternGrammar) Name() string {
	return g.name
}

func (g patternGrammar) Match(line string) (string, string, bool) {
	m := g.pattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var (
	// NumberedGrammar matches "1. Label: value".
	NumberedGrammar LineGrammar = patternGrammar{name: "numbered", pattern: regexp.MustCompile(`^\d+\.\s*([^:]+):\s*(.*)$`)}
	// DashGrammar matches "- Label: value".
	DashGrammar LineGrammar = patternGrammar{name: "dash", pattern: regexp.MustCompile(`^-\s*([^:]+):\s*(.*)$`)}
	// PlainGrammar matches "Label: value" with no prefix.
	PlainGrammar LineGrammar = patternGrammar{name: "plain", pattern: regexp.MustCompile(`^([^:]+):\s*(.*)$`)}
)

// DefaultGrammars returns the line grammars in priority order. Prefixed forms
// come before PlainGrammar so that "1. Phone: 555" yields the label "Phone"
// rather than "1. Phone".
func DefaultGrammars() []LineGrammar {
	return []LineGrammar{NumberedGrammar, DashGrammar, PlainGrammar}
}
