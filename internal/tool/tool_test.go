// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderscope/tender-mcp/internal/response"
	"github.com/tenderscope/tender-mcp/internal/schema"
)

const sampleResponse = `BASIC_INFORMATION:
1. Name of Party: Acme Corp
- PAN: Not found
Free text narrative line with no colon grammar match.
QUALIFICATION_ANALYSIS:
Bidder Category (MSE/Non-MSE): MSE
`

func newTestHandlers(t *testing.T, maxInputBytes int) *Handlers {
	t.Helper()
	checker, err := schema.New()
	require.NoError(t, err)
	return NewHandlers(maxInputBytes, checker, nil)
}

func TestParseTenderResponse(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	h := newTestHandlers(t, 4096)

	tests := []struct {
		name           string
		input          InputParseTenderResponse
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputParseTenderResponse)
	}{
		{
			name:        "empty content returns error",
			input:       InputParseTenderResponse{Content: ""},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name:  "sample response produces document",
			input: InputParseTenderResponse{Content: sampleResponse},
			validateOutput: func(t *testing.T, output OutputParseTenderResponse) {
				assert.Equal(t, 2, output.SectionCount)
				assert.Equal(t, 3, output.FieldCount)
				assert.Equal(t, map[string]map[string]string{
					"BASIC_INFORMATION":      {"Name_of_Party": "Acme Corp", "PAN": "Not found"},
					"QUALIFICATION_ANALYSIS": {"Bidder_Category_(MSE/Non-MSE)": "MSE"},
				}, output.Document)
			},
		},
		{
			name:  "text without headers yields empty document",
			input: InputParseTenderResponse{Content: "The evaluation service could not read the tender."},
			validateOutput: func(t *testing.T, output OutputParseTenderResponse) {
				assert.Equal(t, 0, output.SectionCount)
				assert.Empty(t, output.Document)
			},
		},
		{
			name:        "oversized content is rejected",
			input:       InputParseTenderResponse{Content: "A:\n" + strings.Repeat("x", 5000)},
			wantErr:     true,
			errContains: "exceeds size limit",
		},
		{
			name:        "invalid utf-8 is rejected",
			input:       InputParseTenderResponse{Content: "A:\nb: \xff"},
			wantErr:     true,
			errContains: "not valid UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := h.ParseTenderResponse(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestLookupTenderField(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	h := newTestHandlers(t, 0)

	tests := []struct {
		name    string
		input   InputLookupTenderField
		want    OutputLookupTenderField
		wantErr string
	}{
		{
			name:  "present value",
			input: InputLookupTenderField{Content: sampleResponse, Section: "BASIC_INFORMATION", Field: "Name_of_Party"},
			want:  OutputLookupTenderField{Present: true, Value: "Acme Corp"},
		},
		{
			name:  "keys are normalized",
			input: InputLookupTenderField{Content: sampleResponse, Section: "BASIC INFORMATION", Field: "Name of Party"},
			want:  OutputLookupTenderField{Present: true, Value: "Acme Corp"},
		},
		{
			name:  "literal not found",
			input: InputLookupTenderField{Content: sampleResponse, Section: "BASIC_INFORMATION", Field: "PAN"},
			want:  OutputLookupTenderField{Present: true, Value: response.NotFound, NotFound: true},
		},
		{
			name:  "absent field",
			input: InputLookupTenderField{Content: sampleResponse, Section: "BASIC_INFORMATION", Field: "GSTIN"},
			want:  OutputLookupTenderField{},
		},
		{
			name:  "absent section",
			input: InputLookupTenderField{Content: sampleResponse, Section: "FINANCIAL_CRITERIA", Field: "Turnover"},
			want:  OutputLookupTenderField{},
		},
		{
			name:    "missing field argument",
			input:   InputLookupTenderField{Content: sampleResponse, Section: "BASIC_INFORMATION"},
			wantErr: "section and field are required",
		},
		{
			name:    "missing content",
			input:   InputLookupTenderField{Section: "A", Field: "b"},
			wantErr: "content is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := h.LookupTenderField(ctx, req, tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, output)
		})
	}
}

func TestCheckTenderResponse(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	h := newTestHandlers(t, 0)

	_, output, err := h.CheckTenderResponse(ctx, req, InputCheckTenderResponse{Content: sampleResponse})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Findings)
	assert.Contains(t, output.Missing, "FINANCIAL_CRITERIA")

	_, output, err = h.CheckTenderResponse(ctx, req, InputCheckTenderResponse{Content: "BASIC INFORMATION:\nPAN: lowercase\n"})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Findings)

	_, _, err = h.CheckTenderResponse(ctx, req, InputCheckTenderResponse{})
	require.Error(t, err)
}

func TestNewServer_ListsTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer(newTestHandlers(t, 0))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer clientSession.Close()

	tools, err := clientSession.ListTools(ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"parse_tender_response", "lookup_tender_field", "check_tender_response"}, names)

	result, err := clientSession.CallTool(ctx, &mcp.CallToolParams{
		Name:      "lookup_tender_field",
		Arguments: map[string]any{"content": sampleResponse, "section": "BASIC_INFORMATION", "field": "PAN"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, map[string]any{"present": true, "value": "Not found", "not_found": true}, result.StructuredContent)
}
