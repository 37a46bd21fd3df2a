// SPDX-License-Identifier: Apache-2.0

package response

import (
	"regexp"
	"strings"
	"unicode"
)

// headerPattern matches a section header once trailing whitespace is removed:
// letters, digits, spaces, parentheses, periods, ampersands, hyphens and
// underscores, terminated by a colon with nothing after it.
var headerPattern = regexp.MustCompile(`^[\p{L}\p{N} ().&_-]+:$`)

// headerName reports whether line is a section header and returns the header
// text without its trailing colon.
func headerName(line string) (string, bool) {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if !headerPattern.MatchString(trimmed) {
		return "", false
	}
	name := strings.TrimSuffix(trimmed, ":")
	if Normalize(name) == "" {
		return "", false
	}
	return name, true
}

// IsHeader reports whether line would open a new section.
func IsHeader(line string) bool {
	_, ok := headerName(line)
	return ok
}

// SplitSections slices raw into header/body pairs in source order. Text before
// the first header is discarded, and a document without headers yields nil.
// Repeated headers each produce their own RawSection.
func SplitSections(raw string) []RawSection {
	var sections []RawSection
	var current *RawSection
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(trimBlankLines(body), "\n")
		sections = append(sections, *current)
	}

	for _, line := range splitLines(raw) {
		if name, ok := headerName(line); ok {
			flush()
			current = &RawSection{Name: name}
			body = nil
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// splitLines splits on '\n' and drops the '\r' of CRLF endings.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
