package server

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/maithaen/pwsh-mcp/internal/protocol"
	"github.com/maithaen/pwsh-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
)

type listToolsResult struct {
	Tools []mcp.Tool `json:"tools"`
}

func (s *Server) handleInitialize(req *protocol.Request) *protocol.Response {
	s.log.Info("initialize", "client_protocol", string(req.Params))
	return protocol.NewResult(req.ID, protocol.InitializeResult{
		ProtocolVersion: s.cfg.Server.ProtocolVersion,
		ServerInfo: protocol.ServerInfo{
			Name:    s.cfg.Server.Name,
			Version: s.cfg.Server.Version,
		},
	})
}

func (s *Server) handleToolsList(req *protocol.Request) *protocol.Response {
	return protocol.NewResult(req.ID, listToolsResult{Tools: s.registry.Tools()})
}

func (s *Server) handleToolsCall(ctx context.Context, req *protocol.Request) *protocol.Response {
	var params protocol.CallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return protocol.NewError(req.ID, protocol.CodeInvalidParams, fmt.Sprintf("invalid params: %v", err))
		}
	}

	if params.Name == "" {
		return protocol.NewError(req.ID, protocol.CodeInvalidParams, "Tool name is required")
	}
	if _, known := s.registry.Lookup(params.Name); !known {
		return protocol.NewError(req.ID, protocol.CodeMethodNotFound, fmt.Sprintf("Unknown tool: %s", params.Name))
	}
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	// No partially-validated call reaches a handler.
	if msg := s.registry.Validate(params.Name, params.Arguments); msg != "" {
		return protocol.NewError(req.ID, protocol.CodeInvalidParams, msg)
	}

	s.log.Info("executing tool", "tool", params.Name)
	result := s.callTool(ctx, params.Name, params.Arguments)
	s.log.Info("tool finished", "tool", params.Name, "success", result.Success)

	encoded, err := tools.Encode(result)
	if err != nil {
		return protocol.NewError(req.ID, protocol.CodeInternalError, err.Error())
	}
	return protocol.NewResult(req.ID, encoded)
}

func (s *Server) callTool(ctx context.Context, name string, args map[string]any) tools.ToolResult {
	switch name {
	case tools.NameExecuteScript:
		return s.executeScript(ctx, args)
	case tools.NameGetClipboard:
		return s.getClipboard()
	case tools.NameCaptureResponse:
		return s.captureResponse(args)
	default:
		return tools.Fail("tool not implemented: %s", name)
	}
}

func (s *Server) executeScript(ctx context.Context, args map[string]any) tools.ToolResult {
	script := tools.StringArg(args, "script", "")
	timeout := tools.IntArg(args, "timeout", s.cfg.Execute.DefaultTimeout)

	report, err := s.orch.Execute(ctx, script, timeout)
	if err != nil {
		s.log.Error("script execution failed", "error", err)
		return tools.Fail("%v", err)
	}

	plural := "s"
	if report.Lines == 1 {
		plural = ""
	}
	return tools.Ok(map[string]any{
		"lines_count":  report.Lines,
		"is_multiline": report.Multiline,
		"script_type":  report.ScriptType,
		"timeout_used": report.Timeout,
		"message":      fmt.Sprintf("%s with %d line%s executed successfully", capitalize(report.ScriptType), report.Lines, plural),
	})
}

func (s *Server) getClipboard() tools.ToolResult {
	content, err := s.clip.Read()
	if err != nil {
		s.log.Error("clipboard read failed", "error", err)
		return tools.Fail("failed to get clipboard content: %v", err)
	}

	length := utf8.RuneCountInString(content)
	return tools.Ok(map[string]any{
		"content":  content,
		"length":   length,
		"is_empty": length == 0,
		"message":  fmt.Sprintf("Clipboard content retrieved successfully (%d characters)", length),
	})
}

func (s *Server) captureResponse(args map[string]any) tools.ToolResult {
	savePath := tools.StringArg(args, "save_path", "")
	excludeTitlebar := tools.BoolArg(args, "exclude_titlebar", true)

	report, err := s.capturer.Capture(savePath, excludeTitlebar)
	if err != nil {
		s.log.Error("capture failed", "error", err)
		return tools.Fail("screenshot capture failed: %v", err)
	}

	destination := "temp directory"
	if report.CustomPath {
		destination = "specified path"
	}
	return tools.Ok(map[string]any{
		"saved_to":         report.SavedTo,
		"size":             map[string]any{"width": report.Width, "height": report.Height},
		"file_size_bytes":  report.FileSize,
		"exclude_titlebar": report.ExcludeTitlebar,
		"custom_path":      report.CustomPath,
		"message":          fmt.Sprintf("Screenshot saved to %s", destination),
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
