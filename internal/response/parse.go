// SPDX-License-Identifier: Apache-2.0

package response

// Parser runs the section splitter and the field parser over raw response
// text. A Parser holds no mutable state and may be shared between goroutines.
type Parser struct {
	fields *FieldParser
}

// NewParser creates a Parser whose field parser uses the given grammars.
// With no grammars it uses DefaultGrammars.
func NewParser(grammars ...LineGrammar) *Parser {
	return &Parser{fields: NewFieldParser(grammars...)}
}

// Sections parses every header occurrence into a Section, in source order.
// Duplicate headers are kept as separate entries.
func (p *Parser) Sections(raw string) []Section {
	rawSections := SplitSections(raw)
	sections := make([]Section, 0, len(rawSections))
	for _, rs := range rawSections {
		sections = append(sections, Section{
			RawName: rs.Name,
			Name:    Normalize(rs.Name),
			Fields:  p.fields.Parse(rs.Body),
		})
	}
	return sections
}

// Parse builds the Document for raw. It never fails: input that deviates from
// the expected shape yields a partial or empty Document. When two sections
// normalize to the same name the later one replaces the earlier one entirely.
func (p *Parser) Parse(raw string) *Document {
	doc := NewDocument()
	for _, s := range p.Sections(raw) {
		doc.PutSection(s.Name, s.Fields)
	}
	return doc
}

// FieldParser returns the field parser used for section bodies.
func (p *Parser) FieldParser() *FieldParser {
	return p.fields
}

var defaultParser = NewParser()

// Parse builds the Document for raw with the default grammars.
func Parse(raw string) *Document {
	return defaultParser.Parse(raw)
}
