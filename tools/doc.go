// Package tools is the tool-dispatch boundary: it maps named MCP tool
// invocations to accumulator and renderer calls, validates arguments before
// any state store access, and shapes results as JSON text or image content.
// It is purely a routing and validation layer with no state of its own.
package tools
