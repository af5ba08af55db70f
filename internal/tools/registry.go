package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names exposed over the protocol.
const (
	NameExecuteScript   = "execute_pwsh_script"
	NameGetClipboard    = "get_clipboard"
	NameCaptureResponse = "capture_pwsh_response"
)

// Timeout bounds for execute_pwsh_script, in seconds.
const (
	TimeoutMin = 1
	TimeoutMax = 300
)

// Registry is the static tool catalog. Read-only after construction;
// tools/list must return the identical definitions every time.
type Registry struct {
	tools  []mcp.Tool
	byName map[string]int
}

// NewRegistry builds the three-tool catalog. defaultTimeout is baked into
// the execute_pwsh_script schema so clients see the effective default.
func NewRegistry(defaultTimeout int) *Registry {
	defs := []mcp.Tool{
		{
			Name:        NameExecuteScript,
			Description: "Execute PowerShell script by pasting into terminal (supports both single-line and multi-line scripts)",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"script": map[string]any{
						"type":        "string",
						"description": "PowerShell script to execute (single-line or multi-line)",
						"minLength":   1,
					},
					"timeout": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Timeout in seconds (default: %d)", defaultTimeout),
						"default":     defaultTimeout,
						"minimum":     TimeoutMin,
						"maximum":     TimeoutMax,
					},
				},
				Required: []string{"script"},
			},
		},
		{
			Name:        NameGetClipboard,
			Description: "Get current clipboard content",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
		{
			Name:        NameCaptureResponse,
			Description: "Capture Windows PowerShell terminal output as screenshot",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"save_path": map[string]any{
						"type":        "string",
						"description": "Optional path to save screenshot",
					},
					"exclude_titlebar": map[string]any{
						"type":        "boolean",
						"description": "Exclude window title bar from capture (default: true)",
						"default":     true,
					},
				},
			},
		},
	}

	byName := make(map[string]int, len(defs))
	for i, def := range defs {
		byName[def.Name] = i
	}
	return &Registry{tools: defs, byName: byName}
}

// Tools returns the full catalog in declaration order.
// The returned slice is a copy; the catalog itself never changes.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Lookup returns the definition for name.
func (r *Registry) Lookup(name string) (mcp.Tool, bool) {
	i, ok := r.byName[name]
	if !ok {
		return mcp.Tool{}, false
	}
	return r.tools[i], true
}
