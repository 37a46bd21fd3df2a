// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the tender response parser as MCP tools.
package tool

import (
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/tenderscope/tender-mcp/internal/schema"
)

const (
	serverName    = "tender-mcp"
	serverVersion = "v0.1.0"
)

// Handlers holds the state shared by the tool handlers.
type Handlers struct {
	maxInputBytes int
	logger        *zap.Logger

	// mu guards checker; CUE values are not safe for concurrent use.
	mu      sync.Mutex
	checker *schema.Checker
}

// NewHandlers creates tool handlers. A nil logger is replaced by a no-op logger.
func NewHandlers(maxInputBytes int, checker *schema.Checker, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{maxInputBytes: maxInputBytes, checker: checker, logger: logger}
}

// NewServer creates an MCP server with all tender tools registered.
func NewServer(h *Handlers) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, MetadataParseTenderResponse, h.ParseTenderResponse)
	mcp.AddTool(server, MetadataLookupTenderField, h.LookupTenderField)
	mcp.AddTool(server, MetadataCheckTenderResponse, h.CheckTenderResponse)
	return server
}
