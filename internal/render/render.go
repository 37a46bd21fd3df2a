// SPDX-License-Identifier: Apache-2.0

// Package render encodes and decodes parsed response Documents for inspection.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/tenderscope/tender-mcp/internal/response"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "yaml"}

// Encode renders doc in the named format.
func Encode(doc *response.Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return JSON(doc)
	case "yaml", "yml":
		return YAML(doc)
	}
	return nil, fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// JSON renders doc as an indented JSON object of objects.
func JSON(doc *response.Document) ([]byte, error) {
	if doc == nil {
		doc = response.NewDocument()
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document as JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// YAML renders doc as a YAML mapping of mappings, keys in document order.
func YAML(doc *response.Document) ([]byte, error) {
	out, err := yaml.Marshal(toMapSlice(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document as YAML: %w", err)
	}
	return out, nil
}

func toMapSlice(doc *response.Document) yaml.MapSlice {
	sections := make(yaml.MapSlice, 0, doc.Len())
	for _, name := range doc.Sections() {
		fields, _ := doc.Fields(name)
		items := make(yaml.MapSlice, 0, len(fields))
		for _, f := range fields {
			items = append(items, yaml.MapItem{Key: f.Name, Value: f.Value})
		}
		sections = append(sections, yaml.MapItem{Key: name, Value: items})
	}
	return sections
}

// DecodeYAML reads a mapping of mappings into a Document, keeping key order.
// Scalar values are rendered as strings; a null value becomes the empty string.
func DecodeYAML(data []byte) (*response.Document, error) {
	var root yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML document: %w", err)
	}

	doc := response.NewDocument()
	for _, item := range root {
		section := fmt.Sprint(item.Key)
		fields, err := decodeFields(item.Value)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", section, err)
		}
		doc.PutSection(section, fields)
	}
	return doc, nil
}

func decodeFields(v interface{}) ([]response.Field, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case yaml.MapSlice:
		fields := make([]response.Field, 0, len(m))
		for _, item := range m {
			fields = append(fields, response.Field{Name: fmt.Sprint(item.Key), Value: scalar(item.Value)})
		}
		return fields, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]response.Field, 0, len(m))
		for _, k := range keys {
			fields = append(fields, response.Field{Name: k, Value: scalar(m[k])})
		}
		return fields, nil
	}
	return nil, fmt.Errorf("expected a mapping of fields, got %T", v)
}

func scalar(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
