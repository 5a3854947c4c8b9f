// Package mcpserver exposes the matching service as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/matcher"
)

// Name is the implementation name advertised to MCP clients.
const Name = "talent-matcher"

// New builds an MCP server with every matching tool registered.
func New(svc *matcher.Service, logger *zap.Logger, version string) *mcp.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    Name,
		Version: version,
	}, nil)

	t := &tools{svc: svc, logger: logger}
	t.register(server)
	return server
}

// Run serves the tools over stdin/stdout until ctx is cancelled or the client disconnects.
func Run(ctx context.Context, server *mcp.Server) error {
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// textResult returns a text-only result carrying a one-line summary.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// jsonResult returns the value as indented JSON text for clients that ignore structured content.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textResult("%v", v)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}
