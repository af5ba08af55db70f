package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolResult is the outcome of one tool invocation. Data keys are flattened
// alongside the success flag on the wire.
type ToolResult struct {
	Success bool
	Data    map[string]any
	Error   string
}

// Ok builds a successful result carrying data.
func Ok(data map[string]any) ToolResult {
	return ToolResult{Success: true, Data: data}
}

// Fail builds a failed result with a formatted error message.
func Fail(format string, args ...any) ToolResult {
	return ToolResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Flatten merges the success flag, data fields and error message into a
// single JSON-ready object.
func (r ToolResult) Flatten() map[string]any {
	out := make(map[string]any, len(r.Data)+2)
	out["success"] = r.Success
	for k, v := range r.Data {
		out[k] = v
	}
	if r.Error != "" {
		out["error"] = r.Error
	}
	return out
}

// Encode renders a ToolResult as a CallToolResult holding one pretty-printed
// JSON text item, the shape tools/call clients decode.
func Encode(r ToolResult) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(r.Flatten(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
