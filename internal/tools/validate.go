package tools

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks a tool call's arguments against the catalog constraints.
// It returns "" when the call is valid, otherwise a human-readable message
// naming the first violated constraint. Required fields are checked before
// type and range constraints. Arguments are never mutated.
func (r *Registry) Validate(name string, args map[string]any) string {
	tool, ok := r.Lookup(name)
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}

	for _, field := range tool.InputSchema.Required {
		if _, present := args[field]; !present {
			return fmt.Sprintf("Missing required argument: %s", field)
		}
	}

	switch name {
	case NameExecuteScript:
		script, ok := args["script"].(string)
		if !ok {
			return "Script must be a string"
		}
		if strings.TrimSpace(script) == "" {
			return "Script cannot be empty"
		}
		if raw, present := args["timeout"]; present {
			timeout, ok := intArg(raw)
			if !ok || timeout < TimeoutMin || timeout > TimeoutMax {
				return fmt.Sprintf("Timeout must be an integer between %d and %d seconds", TimeoutMin, TimeoutMax)
			}
		}
	case NameCaptureResponse:
		if raw, present := args["save_path"]; present && raw != nil {
			if _, ok := raw.(string); !ok {
				return "save_path must be a string"
			}
		}
		if raw, present := args["exclude_titlebar"]; present {
			if _, ok := raw.(bool); !ok {
				return "exclude_titlebar must be a boolean"
			}
		}
	}
	return ""
}

// intArg converts a decoded JSON value to int, rejecting fractional numbers.
func intArg(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// IntArg reads an integer argument, falling back when absent or non-integral.
func IntArg(args map[string]any, key string, fallback int) int {
	if raw, ok := args[key]; ok {
		if n, ok := intArg(raw); ok {
			return n
		}
	}
	return fallback
}

// StringArg reads a string argument, falling back when absent or mistyped.
func StringArg(args map[string]any, key, fallback string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return fallback
}

// BoolArg reads a boolean argument, falling back when absent or mistyped.
func BoolArg(args map[string]any, key string, fallback bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return fallback
}
