// SPDX-License-Identifier: Apache-2.0

// Package response turns the free-form text returned by the tender evaluation
// generation service into a nested, queryable key/value Document.
//
// The input is a sequence of "SECTION NAME:" header lines, each followed by
// loosely formatted "label: value" lines. Parsing never fails: text that does
// not fit the expected shape is skipped, and an input without headers yields an
// empty Document. The only errors in this package come from Receive, which
// guards the boundary where raw text enters the system.
package response

// NotFound is the literal the generation service writes when it could not
// locate a value in the tender. It is a present value, distinct from an absent key.
const NotFound = "Not found"

// RawSection is a header and the body text that follows it, exactly as
// captured from the source.
type RawSection struct {
	Name string
	Body string
}

// Section is a parsed section. Name is the normalized key; RawName is the
// header text as written.
type Section struct {
	RawName string
	Name    string
	Fields  []Field
}

// Field is a normalized label and its trimmed value.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
