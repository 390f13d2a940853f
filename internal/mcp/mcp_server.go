// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/ghclient"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the wrapped MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.ActivityFetcher, mgr contract.CacheManager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"GitHub Wrapped Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		mgr:     mgr,
	}

	// --- 1. Tool: get_wrapped ---
	s.AddTool(mcp.NewTool("get_wrapped",
		mcp.WithDescription("Build a year-in-review summary of a GitHub user's public activity, including their developer archetype."),
		mcp.WithString("username", mcp.Description("GitHub login to analyze."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Calendar year to summarize. Defaults to the current year.")),
		mcp.WithBoolean("explain", mcp.Description("Include the classifier inputs and the rule that matched.")),
	), h.handleGetWrapped)

	// --- 2. Tool: list_archetypes ---
	s.AddTool(mcp.NewTool("list_archetypes",
		mcp.WithDescription("List every developer archetype with its rarity and the rule that assigns it, in evaluation order."),
	), h.handleListArchetypes)

	return s
}

// StartMCPServer starts the wrapped MCP server on stdio.
func StartMCPServer(ctx context.Context, baseCfg *contract.Config, mgr contract.CacheManager, version string) error {
	client, err := ghclient.NewClientFromConfig(ctx, baseCfg)
	if err != nil {
		return err
	}
	s := NewMCPServer(baseCfg, client, mgr, version)
	return server.ServeStdio(s)
}
