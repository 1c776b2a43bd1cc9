package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

var logger = xlog.NewPackageLogger("github.com/dedalus-labs/viz-mcp-example", "tools")

// Tool is one named operation exposed to the MCP framework.
type Tool interface {
	// Definition returns the tool's LLM-facing schema.
	Definition() mcp.Tool
	// Handle processes the request and returns a structured result.
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// floatArg extracts a numeric argument from a tool request
// (JSON numbers arrive as float64).
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}

// stringArg extracts a string argument, returning defaultVal if the key is
// missing or not a string.
func stringArg(req mcp.CallToolRequest, key, defaultVal string) string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return defaultVal
	}
	return v
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// errorResult converts internal errors into the framework's structured error
// shape. This is the single point of conversion: store failures stay
// distinguishable from render failures so the agent can still report metrics
// as text when charting breaks.
func errorResult(ctx context.Context, op string, err error) *mcp.CallToolResult {
	logger.ContextKV(ctx, xlog.ERROR, "op", op, "err", err.Error())
	switch {
	case errors.Is(err, vizmodel.ErrInvalidArgument):
		return mcp.NewToolResultError(err.Error())
	case errors.Is(err, vizmodel.ErrStoreUnavailable):
		return mcp.NewToolResultError("data backend unreachable: " + err.Error())
	case errors.Is(err, vizmodel.ErrRenderFailure):
		return mcp.NewToolResultError("chart rendering failed: " + err.Error())
	default:
		return mcp.NewToolResultError(err.Error())
	}
}
