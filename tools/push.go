package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// PushTool appends one data point to the metrics dataset.
type PushTool struct {
	acc   *metrics.Accumulator
	scope string
}

var _ Tool = (*PushTool)(nil)

func NewPushTool(acc *metrics.Accumulator, scope string) *PushTool {
	return &PushTool{acc: acc, scope: scope}
}

func (t *PushTool) Definition() mcp.Tool {
	return mcp.NewTool("push",
		mcp.WithDescription("Add a data point to the metrics"),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("Numeric value of the data point; must be finite"),
		),
		mcp.WithString("label",
			mcp.Description("Series label for the data point"),
		),
	)
}

func (t *PushTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, ok := floatArg(req, "value")
	if !ok {
		return mcp.NewToolResultError("value must be a number"), nil
	}
	label := stringArg(req, "label", "")

	res, err := t.acc.Push(ctx, vizmodel.ScopeOrDefault(ctx, t.scope), value, label)
	if err != nil {
		return errorResult(ctx, "push", err), nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return errorResult(ctx, "push", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
