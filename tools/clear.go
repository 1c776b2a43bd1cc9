package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// ClearTool resets the dataset to empty. Idempotent.
type ClearTool struct {
	acc   *metrics.Accumulator
	scope string
}

var _ Tool = (*ClearTool)(nil)

func NewClearTool(acc *metrics.Accumulator, scope string) *ClearTool {
	return &ClearTool{acc: acc, scope: scope}
}

func (t *ClearTool) Definition() mcp.Tool {
	return mcp.NewTool("clear",
		mcp.WithDescription("Clear all metrics data"),
	)
}

func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.acc.Clear(ctx, vizmodel.ScopeOrDefault(ctx, t.scope)); err != nil {
		return errorResult(ctx, "clear", err), nil
	}

	data, _ := json.Marshal(map[string]bool{"cleared": true})
	return mcp.NewToolResultText(string(data)), nil
}
