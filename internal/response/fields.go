// SPDX-License-Identifier: Apache-2.0

package response

import "strings"

// FieldParser extracts fields from a section body using an ordered list of
// line grammars. The first grammar that matches a line wins.
type FieldParser struct {
	grammars []LineGrammar
}

// NewFieldParser creates a FieldParser with the given grammars, in priority
// order. With no grammars it uses DefaultGrammars.
func NewFieldParser(grammars ...LineGrammar) *FieldParser {
	if len(grammars) == 0 {
		grammars = DefaultGrammars()
	}
	return &FieldParser{grammars: grammars}
}

// Match is the outcome of testing one line against the grammars.
type Match struct {
	Grammar string
	Field   Field
}

// MatchLine tests line against the grammars in priority order and reports the
// first that yields a usable field. Blank lines, prose, and labels that
// normalize to nothing do not match.
func (p *FieldParser) MatchLine(line string) (Match, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Match{}, false
	}
	grammar, label, value, ok := p.selectGrammar(line)
	if !ok {
		return Match{}, false
	}
	name := Normalize(label)
	if name == "" {
		return Match{}, false
	}
	return Match{
		Grammar: grammar.Name(),
		Field:   Field{Name: name, Value: strings.TrimSpace(value)},
	}, true
}

// selectGrammar returns the first grammar that matches line. Lower-priority
// grammars are never consulted once one has matched.
func (p *FieldParser) selectGrammar(line string) (LineGrammar, string, string, bool) {
	for _, g := range p.grammars {
		if label, value, ok := g.Match(line); ok {
			return g, label, value, true
		}
	}
	return nil, "", "", false
}

// Parse extracts the fields of body in order of first appearance. A label that
// appears again keeps its position but takes the later value.
func (p *FieldParser) Parse(body string) []Field {
	var fields []Field
	index := make(map[string]int)

	for _, line := range splitLines(body) {
		m, ok := p.MatchLine(line)
		if !ok {
			continue
		}
		if i, seen := index[m.Field.Name]; seen {
			fields[i].Value = m.Field.Value
			continue
		}
		index[m.Field.Name] = len(fields)
		fields = append(fields, m.Field)
	}
	return fields
}

// Grammars returns the names of the configured grammars in priority order.
func (p *FieldParser) Grammars() []string {
	names := make([]string, len(p.grammars))
	for i, g := range p.grammars {
		names[i] = g.Name()
	}
	return names
}

var defaultFieldParser = NewFieldParser()

// ParseFields extracts the fields of a section body with the default grammars.
func ParseFields(body string) []Field {
	return defaultFieldParser.Parse(body)
}
