// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/tenderscope/tender-mcp/internal/logging"
	"github.com/tenderscope/tender-mcp/internal/response"
)

// MetadataParseTenderResponse describes the parse_tender_response tool.
var MetadataParseTenderResponse = &mcp.Tool{
	Name: "parse_tender_response",
	Description: "Parse the text returned by the tender evaluation service into a nested document of " +
		"normalized section and field names. Section headers are lines such as \"FINANCIAL CRITERIA:\"; " +
		"fields are \"label: value\" lines, optionally prefixed by \"1.\" or \"-\". Keys have whitespace " +
		"collapsed to underscores and keep their case. Lines that do not match are ignored; text without " +
		"headers yields an empty document.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw text returned by the evaluation service",
			},
		},
	},
}

// InputParseTenderResponse is the input for the ParseTenderResponse tool.
type InputParseTenderResponse struct {
	Content string `json:"content"`
}

// OutputParseTenderResponse is the output for the ParseTenderResponse tool.
type OutputParseTenderResponse struct {
	// Document maps section name to field name to value.
	Document     map[string]map[string]string `json:"document"`
	SectionCount int                          `json:"section_count"`
	FieldCount   int                          `json:"field_count"`
}

// receive runs content through the intake checks shared by every tool.
func (h *Handlers) receive(content string) (*response.Document, error) {
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	raw, err := response.Receive([]byte(content), h.maxInputBytes)
	if err != nil {
		return nil, err
	}
	doc := response.Parse(raw)
	h.logger.Debug("parsed tender response", logging.DocumentFields(doc.Len(), doc.FieldCount(), len(content))...)
	return doc, nil
}

// ParseTenderResponse parses the provided response text.
func (h *Handlers) ParseTenderResponse(_ context.Context, _ *mcp.CallToolRequest, input InputParseTenderResponse) (*mcp.CallToolResult, OutputParseTenderResponse, error) {
	doc, err := h.receive(input.Content)
	if err != nil {
		h.logger.Warn("rejected tender response", zap.Error(err))
		return nil, OutputParseTenderResponse{}, err
	}

	return nil, OutputParseTenderResponse{
		Document:     doc.Map(),
		SectionCount: doc.Len(),
		FieldCount:   doc.FieldCount(),
	}, nil
}
