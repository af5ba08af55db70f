package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/maithaen/pwsh-mcp/internal/capture"
	"github.com/maithaen/pwsh-mcp/internal/config"
	"github.com/maithaen/pwsh-mcp/internal/protocol"
	"github.com/maithaen/pwsh-mcp/internal/session"
	"github.com/maithaen/pwsh-mcp/internal/tools"
)

// maxLineBytes bounds a single request line. Scripts are pasted inline, so
// the limit is generous.
const maxLineBytes = 4 * 1024 * 1024

// Driver is the full OS-automation capability surface the server consumes.
// The terminal process, its window and the clipboard are ambient OS
// singletons; the driver never assumes exclusive access to them.
type Driver interface {
	session.ProcessInspector
	session.WindowQuery
	session.InputInjector
	session.Clipboard
	session.ScreenCapturer
}

// Server owns the protocol loop and tool execution for one stdio session.
// Requests are handled strictly sequentially; the terminal window and
// clipboard are shared resources and interleaved calls would race on them.
type Server struct {
	cfg      *config.Config
	registry *tools.Registry
	orch     *session.Orchestrator
	clip     session.Clipboard
	capturer *capture.Capturer
	log      *slog.Logger
}

// New wires a server from config and an automation driver.
func New(cfg *config.Config, driver Driver, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	launch := make([]session.LaunchStrategy, 0, len(cfg.Terminal.LaunchCommands))
	for _, cmd := range cfg.Terminal.LaunchCommands {
		launch = append(launch, session.LaunchStrategy{
			Command: cmd,
			Wait:    cfg.Terminal.LaunchWaitDuration(),
			Poll:    cfg.Terminal.LaunchPollDuration(),
		})
	}

	machineOpts := session.Options{
		Titles: cfg.Terminal.WindowTitles,
		Launch: launch,
		Retry: session.RetryPolicy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			Interval:    cfg.Retry.IntervalDuration(),
		},
		Logger: log.With("component", "session"),
	}

	orch := session.NewOrchestrator(driver, driver, driver, session.OrchestratorConfig{
		Machine:          machineOpts,
		SingleLineSettle: cfg.Execute.SingleLineSettleDuration(),
		MultiLineSettle:  cfg.Execute.MultiLineSettleDuration(),
		Logger:           log.With("component", "execute"),
	})

	capturer := capture.New(driver, driver, capture.Config{
		Titles:         cfg.Terminal.WindowTitles,
		TitlebarHeight: cfg.Capture.TitlebarHeight,
		OutputDir:      cfg.Capture.OutputDir,
		Logger:         log.With("component", "capture"),
	})

	return &Server{
		cfg:      cfg,
		registry: tools.NewRegistry(cfg.Execute.DefaultTimeout),
		orch:     orch,
		clip:     driver,
		capturer: capturer,
		log:      log,
	}
}

// Serve reads one request per line from r and writes one response per line
// to w until r is exhausted or ctx is done. Malformed lines produce a parse
// error response and the loop continues; blank lines are skipped silently.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	requests := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		requests++
		resp := s.HandleLine(ctx, []byte(line))
		if err := writeResponse(w, resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	s.log.Info("input closed, shutting down", "requests", requests)
	return nil
}

// HandleLine parses one request line and dispatches it. Unparseable input
// yields a parse-error response keyed to the fallback id.
func (s *Server) HandleLine(ctx context.Context, line []byte) *protocol.Response {
	var req protocol.Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Error("malformed request line", "error", err)
		return protocol.NewError(protocol.FallbackID, protocol.CodeParseError, "Parse error")
	}
	return s.Handle(ctx, &req)
}

// Handle routes a parsed request. It is total and non-throwing: every
// failure path, including a panicking handler, becomes an error response.
func (s *Server) Handle(ctx context.Context, req *protocol.Request) (resp *protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic handling request", "method", req.Method, "panic", r)
			resp = protocol.NewError(req.ID, protocol.CodeInternalError, fmt.Sprintf("internal error: %v", r))
		}
	}()

	s.log.Debug("handling request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return protocol.NewError(req.ID, protocol.CodeMethodNotFound, fmt.Sprintf("Unknown method: %s", req.Method))
	}
}

func writeResponse(w io.Writer, resp *protocol.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		// The envelope itself failed to encode; fall back to a bare
		// internal error so the client still gets one line.
		data, _ = json.Marshal(protocol.NewError(resp.ID, protocol.CodeInternalError, "response encoding failed"))
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
