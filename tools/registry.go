package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dedalus-labs/viz-mcp-example/chart"
	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// MetricsResourceURI is the resource exposed for polling/direct reads of the
// current dataset snapshot.
const MetricsResourceURI = "data://metrics"

// Registry wires the four viz tools and the metrics resource onto an MCP
// server.
type Registry struct {
	acc           *metrics.Accumulator
	renderer      chart.Renderer
	scope         string
	chartDefaults chart.Request
}

func NewRegistry(acc *metrics.Accumulator, renderer chart.Renderer, scope string) *Registry {
	return &Registry{acc: acc, renderer: renderer, scope: scope}
}

// WithChartDefaults overrides the default chart title and dimensions.
func (r *Registry) WithChartDefaults(defaults chart.Request) *Registry {
	r.chartDefaults = defaults
	return r
}

// Tools returns all tools in registration order.
func (r *Registry) Tools() []Tool {
	return []Tool{
		NewPushTool(r.acc, r.scope),
		NewGetMetricsTool(r.acc, r.scope),
		NewGetChartTool(r.acc, r.renderer, r.scope).WithDefaults(r.chartDefaults),
		NewClearTool(r.acc, r.scope),
	}
}

// Register adds every tool and the data://metrics resource to srv.
func (r *Registry) Register(srv *server.MCPServer) {
	for _, t := range r.Tools() {
		srv.AddTool(t.Definition(), t.Handle)
	}

	srv.AddResource(mcp.NewResource(MetricsResourceURI, "metrics",
		mcp.WithResourceDescription("Current metrics snapshot"),
		mcp.WithMIMEType("application/json"),
	), r.readMetrics)
}

func (r *Registry) readMetrics(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds, err := r.acc.Get(ctx, vizmodel.ScopeOrDefault(ctx, r.scope))
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(newDatasetPayload(ds))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
