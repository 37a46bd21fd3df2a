// SPDX-License-Identifier: Apache-2.0

package response

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the parsed response: normalized section name to normalized field
// name to value. Keys keep their first insertion order so that rendering is
// deterministic. The zero value and a nil *Document are both empty.
type Document struct {
	order    []string
	sections map[string]*fieldSet
}

type fieldSet struct {
	order  []string
	values map[string]string
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{sections: make(map[string]*fieldSet)}
}

// PutSection stores fields under the section name, replacing any section
// already stored under the same key. Names are normalized; among fields that
// share a normalized name the last one wins.
func (d *Document) PutSection(name string, fields []Field) {
	key := Normalize(name)
	if key == "" {
		return
	}
	if d.sections == nil {
		d.sections = make(map[string]*fieldSet)
	}
	set := &fieldSet{values: make(map[string]string, len(fields))}
	for _, f := range fields {
		fk := Normalize(f.Name)
		if fk == "" {
			continue
		}
		if _, seen := set.values[fk]; !seen {
			set.order = append(set.order, fk)
		}
		set.values[fk] = f.Value
	}
	if _, seen := d.sections[key]; !seen {
		d.order = append(d.order, key)
	}
	d.sections[key] = set
}

// Len returns the number of sections.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// FieldCount returns the number of fields across all sections.
func (d *Document) FieldCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, set := range d.sections {
		n += len(set.order)
	}
	return n
}

// Sections returns the section keys in order.
func (d *Document) Sections() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.order...)
}

// Has reports whether the section exists, even if it has no fields.
func (d *Document) Has(section string) bool {
	_, ok := d.section(section)
	return ok
}

// Fields returns the fields of a section in order and whether the section
// exists.
func (d *Document) Fields(section string) ([]Field, bool) {
	set, ok := d.section(section)
	if !ok {
		return nil, false
	}
	fields := make([]Field, 0, len(set.order))
	for _, k := range set.order {
		fields = append(fields, Field{Name: k, Value: set.values[k]})
	}
	return fields, true
}

// Lookup returns the value stored at section/field. Both keys are normalized
// first, so "BASIC INFORMATION" and "BASIC_INFORMATION" address the same
// section; case is significant. A missing section or field yields an absent
// Value.
func (d *Document) Lookup(section, field string) Value {
	set, ok := d.section(section)
	if !ok {
		return Value{}
	}
	v, ok := set.values[Normalize(field)]
	if !ok {
		return Value{}
	}
	return Value{text: v, present: true}
}

// Map returns a copy of the document as plain nested maps.
func (d *Document) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, d.Len())
	if d == nil {
		return out
	}
	for _, name := range d.order {
		set := d.sections[name]
		fields := make(map[string]string, len(set.order))
		for k, v := range set.values {
			fields[k] = v
		}
		out[name] = fields
	}
	return out
}

func (d *Document) section(name string) (*fieldSet, bool) {
	if d == nil || d.sections == nil {
		return nil, false
	}
	set, ok := d.sections[Normalize(name)]
	return set, ok
}

// MarshalJSON encodes the document as an object of objects, keys in order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.Sections() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteString(":{")
		fields, _ := d.Fields(name)
		for j, f := range fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, f.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSONString(&buf, f.Value); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON decodes an object of objects of strings, keeping key order.
// Keys are normalized on the way in.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	doc := NewDocument()
	for dec.More() {
		section, err := readKey(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("section %q: %w", section, err)
		}
		var fields []Field
		for dec.More() {
			name, err := readKey(dec)
			if err != nil {
				return fmt.Errorf("section %q: %w", section, err)
			}
			var value string
			if err := dec.Decode(&value); err != nil {
				return fmt.Errorf("field %q in section %q: %w", name, section, err)
			}
			fields = append(fields, Field{Name: name, Value: value})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("section %q: %w", section, err)
		}
		doc.PutSection(section, fields)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	*d = *doc
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return fmt.Errorf("failed to decode document: expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("failed to decode document: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("failed to decode document: expected key, got %v", tok)
	}
	return key, nil
}

// Value is the result of a Lookup. An absent Value is distinct from a present
// empty string and from the literal NotFound.
type Value struct {
	text    string
	present bool
}

// Present reports whether the key existed in the document.
func (v Value) Present() bool {
	return v.present
}

// String returns the stored text, or "" when absent.
func (v Value) String() string {
	return v.text
}

// IsNotFound reports whether the key is present with the literal NotFound.
func (v Value) IsNotFound() bool {
	return v.present && v.text == NotFound
}

// Or returns the stored text, or fallback when the key is absent.
func (v Value) Or(fallback string) string {
	if !v.present {
		return fallback
	}
	return v.text
}
