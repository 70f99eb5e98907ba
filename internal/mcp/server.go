// Package mcp exposes the campaign tracker over the Model Context Protocol.
// Tools cover the write side (games, players, campaigns, keys, entries,
// events) and the replayed state reads; the campaign listing is a readable
// resource.
package mcp

import (
	"context"
	"fmt"

	"github.com/louisbranch/playtally/internal/campaign/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "playtally"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server wraps an MCP server bound to the tracker service.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer creates a configured MCP server with every tool and resource
// registered against the given tracker service.
func NewServer(svc *service.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("tracker service is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, GameCreateTool(), GameCreateHandler(svc))
	mcp.AddTool(mcpServer, PlayerCreateTool(), PlayerCreateHandler(svc))
	mcp.AddTool(mcpServer, CampaignCreateTool(), CampaignCreateHandler(svc))
	mcp.AddTool(mcpServer, CustomFieldCreateTool(), CustomFieldCreateHandler(svc))
	mcp.AddTool(mcpServer, CustomFieldValueCreateTool(), CustomFieldValueCreateHandler(svc))
	mcp.AddTool(mcpServer, KeyCreateTool(), KeyCreateHandler(svc))
	mcp.AddTool(mcpServer, EntryLogTool(), EntryLogHandler(svc))
	mcp.AddTool(mcpServer, EventAppendTool(), EventAppendHandler(svc))
	mcp.AddTool(mcpServer, CampaignStateTool(), CampaignStateHandler(svc))
	mcp.AddTool(mcpServer, CampaignStatsTool(), CampaignStatsHandler(svc))

	mcpServer.AddResource(CampaignListResource(), CampaignListResourceHandler(svc))

	return &Server{mcpServer: mcpServer}, nil
}

// Run serves the MCP protocol over stdio and blocks until the context is
// canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
