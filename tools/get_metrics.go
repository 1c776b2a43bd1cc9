package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// GetMetricsTool returns the current dataset as structured JSON.
type GetMetricsTool struct {
	acc   *metrics.Accumulator
	scope string
}

var _ Tool = (*GetMetricsTool)(nil)

func NewGetMetricsTool(acc *metrics.Accumulator, scope string) *GetMetricsTool {
	return &GetMetricsTool{acc: acc, scope: scope}
}

type datasetPayload struct {
	Metrics     []vizmodel.Sample `json:"metrics"`
	Count       int               `json:"count"`
	LastUpdated *time.Time        `json:"last_updated"`
}

func newDatasetPayload(ds *vizmodel.Dataset) datasetPayload {
	return datasetPayload{
		Metrics:     ds.Samples,
		Count:       ds.Count(),
		LastUpdated: ds.LastUpdated,
	}
}

func (t *GetMetricsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_metrics",
		mcp.WithDescription("Get current metrics as JSON"),
	)
}

func (t *GetMetricsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, err := t.acc.Get(ctx, vizmodel.ScopeOrDefault(ctx, t.scope))
	if err != nil {
		return errorResult(ctx, "get_metrics", err), nil
	}

	data, err := json.Marshal(newDatasetPayload(ds))
	if err != nil {
		return errorResult(ctx, "get_metrics", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
