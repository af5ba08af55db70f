package session

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// ExecutionReport carries the metadata of a delivered script.
type ExecutionReport struct {
	Lines      int
	Multiline  bool
	ScriptType string
	// Timeout is the configured timeout in seconds. Informational
	// pass-through; delivery itself enforces no hard deadline.
	Timeout int
}

// OrchestratorConfig tunes script delivery.
type OrchestratorConfig struct {
	Machine Options
	// Settle delays give the terminal time to begin processing before the
	// call returns. They do not confirm completion.
	SingleLineSettle time.Duration
	MultiLineSettle  time.Duration
	Logger           *slog.Logger
}

// Orchestrator sequences ensure-ready, delivery and settle for one script.
type Orchestrator struct {
	input InputInjector
	cfg   OrchestratorConfig
	log   *slog.Logger

	sleep      func(time.Duration) // injected in tests
	newMachine func() *Machine
}

// NewOrchestrator builds an orchestrator over the given collaborators.
// Each Execute call runs against a fresh readiness machine.
func NewOrchestrator(proc ProcessInspector, windows WindowQuery, input InputInjector, cfg OrchestratorConfig) *Orchestrator {
	if cfg.SingleLineSettle <= 0 {
		cfg.SingleLineSettle = DefaultSingleLineSettle
	}
	if cfg.MultiLineSettle <= 0 {
		cfg.MultiLineSettle = DefaultMultiLineSettle
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		input: input,
		cfg:   cfg,
		log:   cfg.Logger,
		sleep: time.Sleep,
		newMachine: func() *Machine {
			return NewMachine(proc, windows, cfg.Machine)
		},
	}
}

// Execute delivers script to a ready terminal as a single paste-and-enter
// action and reports metadata about what was delivered. The timeout is
// recorded in the report but not enforced here.
func (o *Orchestrator) Execute(ctx context.Context, script string, timeout int) (ExecutionReport, error) {
	if strings.TrimSpace(script) == "" {
		return ExecutionReport{}, &ScriptExecutionError{Reason: "empty script provided"}
	}

	lines := countNonBlankLines(script)
	multiline := lines > 1
	scriptType := "single command"
	if multiline {
		scriptType = "multi-line script"
	}
	o.log.Info("preparing script", "type", scriptType, "lines", lines)

	machine := o.newMachine()
	if err := machine.EnsureReady(ctx); err != nil {
		return ExecutionReport{}, err
	}

	if err := o.input.PasteAndSubmit(script, true); err != nil {
		return ExecutionReport{}, &ScriptExecutionError{Reason: "failed to paste " + scriptType, Err: err}
	}

	settle := o.cfg.SingleLineSettle
	if multiline {
		settle = o.cfg.MultiLineSettle
	}
	o.sleep(settle)

	o.log.Info("script delivered", "type", scriptType, "lines", lines)
	return ExecutionReport{
		Lines:      lines,
		Multiline:  multiline,
		ScriptType: scriptType,
		Timeout:    timeout,
	}, nil
}

// countNonBlankLines counts lines that remain non-empty after trimming,
// so blank-line padding never affects classification.
func countNonBlankLines(script string) int {
	n := 0
	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// Default settle delays, mirrored by the config package.
const (
	DefaultSingleLineSettle = 1 * time.Second
	DefaultMultiLineSettle  = 2 * time.Second
)
