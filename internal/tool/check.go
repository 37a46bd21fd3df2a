// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/tenderscope/tender-mcp/internal/schema"
)

// MetadataCheckTenderResponse describes the check_tender_response tool.
var MetadataCheckTenderResponse = &mcp.Tool{
	Name: "check_tender_response",
	Description: "Parse the evaluation service text and check it against the evaluation schema. " +
		"Returns schema violations as findings and lists expected sections that are missing. " +
		"Missing sections do not make the response invalid.",
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

// InputCheckTenderResponse is the input for the CheckTenderResponse tool.
type InputCheckTenderResponse struct {
	Content string `json:"content"`
}

// OutputCheckTenderResponse is the output for the CheckTenderResponse tool.
type OutputCheckTenderResponse struct {
	Valid    bool             `json:"valid"`
	Findings []schema.Finding `json:"findings"`
	Missing  []string         `json:"missing"`
}

// CheckTenderResponse parses the response and validates it against the schema.
func (h *Handlers) CheckTenderResponse(_ context.Context, _ *mcp.CallToolRequest, input InputCheckTenderResponse) (*mcp.CallToolResult, OutputCheckTenderResponse, error) {
	doc, err := h.receive(input.Content)
	if err != nil {
		h.logger.Warn("rejected tender response", zap.Error(err))
		return nil, OutputCheckTenderResponse{}, err
	}

	h.mu.Lock()
	report := h.checker.Check(doc)
	h.mu.Unlock()

	if !report.Valid {
		h.logger.Info("tender response failed schema check", zap.Int("findings", len(report.Findings)))
	}
	return nil, OutputCheckTenderResponse{
		Valid:    report.Valid,
		Findings: report.Findings,
		Missing:  report.Missing,
	}, nil
}
