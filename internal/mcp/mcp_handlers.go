package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.ActivityFetcher
	mgr     contract.CacheManager
}

func (h *toolHandler) handleGetWrapped(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	if err := contract.ValidateUsername(username); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	year := request.GetInt("year", 0)
	if year != 0 {
		if err := contract.ValidateYear(year, time.Now().In(h.location()).Year()); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	cfg := h.baseCfg.CloneForRequest(username, year)
	cfg.Explain = request.GetBool("explain", false)

	result, err := core.GetWrappedResult(core.WithSuppressHeader(ctx), cfg, h.fetcher, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("wrapped failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListArchetypes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(core.ArchetypeRuleCatalog(), "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) location() *time.Location {
	if h.baseCfg.Location == nil {
		return time.Local
	}
	return h.baseCfg.Location
}
