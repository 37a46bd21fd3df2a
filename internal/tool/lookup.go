// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// MetadataLookupTenderField describes the lookup_tender_field tool.
var MetadataLookupTenderField = &mcp.Tool{
	Name: "lookup_tender_field",
	Description: "Parse the evaluation service text and look up one field. Section and field names " +
		"are normalized (whitespace to underscores) but case-sensitive. The result distinguishes a " +
		"missing field (present=false) from a field the service reported as \"Not found\" " +
		"(present=true, not_found=true) and from an empty value.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content", "section", "field"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw text returned by the evaluation service",
			},
			"section": map[string]interface{}{
				"type":        "string",
				"description": "Section name, e.g. BASIC_INFORMATION",
			},
			"field": map[string]interface{}{
				"type":        "string",
				"description": "Field name, e.g. Contact_No.",
			},
		},
	},
}

// InputLookupTenderField is the input for the LookupTenderField tool.
type InputLookupTenderField struct {
	Content string `json:"content"`
	Section string `json:"section"`
	Field   string `json:"field"`
}

// OutputLookupTenderField is the output for the LookupTenderField tool.
type OutputLookupTenderField struct {
	Present  bool   `json:"present"`
	Value    string `json:"value"`
	NotFound bool   `json:"not_found"`
}

// LookupTenderField parses the response and returns a single value.
func (h *Handlers) LookupTenderField(_ context.Context, _ *mcp.CallToolRequest, input InputLookupTenderField) (*mcp.CallToolResult, OutputLookupTenderField, error) {
	if input.Section == "" || input.Field == "" {
		return nil, OutputLookupTenderField{}, fmt.Errorf("section and field are required")
	}
	doc, err := h.receive(input.Content)
	if err != nil {
		h.logger.Warn("rejected tender response", zap.Error(err))
		return nil, OutputLookupTenderField{}, err
	}

	v := doc.Lookup(input.Section, input.Field)
	return nil, OutputLookupTenderField{
		Present:  v.Present(),
		Value:    v.String(),
		NotFound: v.IsNotFound(),
	}, nil
}
