package tools

import (
	"context"
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dedalus-labs/viz-mcp-example/chart"
	"github.com/dedalus-labs/viz-mcp-example/metrics"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// GetChartTool renders the current dataset as a PNG line chart for vision
// LLMs. Reads only; never mutates the dataset.
type GetChartTool struct {
	acc      *metrics.Accumulator
	renderer chart.Renderer
	scope    string
	defaults chart.Request
}

var _ Tool = (*GetChartTool)(nil)

func NewGetChartTool(acc *metrics.Accumulator, renderer chart.Renderer, scope string) *GetChartTool {
	return &GetChartTool{
		acc:      acc,
		renderer: renderer,
		scope:    scope,
		defaults: chart.Request{Title: chart.DefaultTitle, Width: chart.DefaultWidth, Height: chart.DefaultHeight},
	}
}

// WithDefaults overrides the rendering defaults applied when the caller
// omits title, width, or height.
func (t *GetChartTool) WithDefaults(defaults chart.Request) *GetChartTool {
	if defaults.Title != "" {
		t.defaults.Title = defaults.Title
	}
	if defaults.Width > 0 {
		t.defaults.Width = defaults.Width
	}
	if defaults.Height > 0 {
		t.defaults.Height = defaults.Height
	}
	return t
}

func (t *GetChartTool) Definition() mcp.Tool {
	return mcp.NewTool("get_chart",
		mcp.WithDescription("Render metrics as a line chart image (PNG)"),
		mcp.WithString("title",
			mcp.Description("Chart title"),
		),
		mcp.WithNumber("width",
			mcp.Description("Image width in pixels"),
		),
		mcp.WithNumber("height",
			mcp.Description("Image height in pixels"),
		),
	)
}

func (t *GetChartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	creq := chart.Request{
		Title:  stringArg(req, "title", t.defaults.Title),
		Width:  intArg(req, "width", t.defaults.Width),
		Height: intArg(req, "height", t.defaults.Height),
	}

	ds, err := t.acc.Get(ctx, vizmodel.ScopeOrDefault(ctx, t.scope))
	if err != nil {
		return errorResult(ctx, "get_chart", err), nil
	}

	png, err := t.renderer.Render(ds, creq)
	if err != nil {
		return errorResult(ctx, "get_chart", err), nil
	}

	encoded := base64.StdEncoding.EncodeToString(png)
	return mcp.NewToolResultImage(creq.Title, encoded, "image/png"), nil
}
