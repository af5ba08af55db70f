package session

// TerminalUnavailableError reports that no terminal window reached focus
// within the full retry budget. It is terminal for one EnsureReady call;
// the caller decides whether to retry the whole operation.
type TerminalUnavailableError struct {
	Reason string
}

func (e *TerminalUnavailableError) Error() string {
	return "terminal unavailable: " + e.Reason
}

// ScriptExecutionError reports that delivery failed, either on bad input or
// after readiness was achieved.
type ScriptExecutionError struct {
	Reason string
	Err    error
}

func (e *ScriptExecutionError) Error() string {
	if e.Err != nil {
		return "script execution failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "script execution failed: " + e.Reason
}

func (e *ScriptExecutionError) Unwrap() error { return e.Err }
