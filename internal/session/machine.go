package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// State identifies where the readiness machine is in its lifecycle.
type State int

const (
	StateUnknown State = iota
	StateLaunching
	StateSearching
	StateFocusing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateLaunching:
		return "launching"
	case StateSearching:
		return "searching"
	case StateFocusing:
		return "focusing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RetryPolicy bounds the find+focus polling loop. Discovery and focus are
// cheap and idempotent, so they are retried far more aggressively than
// process launch.
type RetryPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

// LaunchStrategy is one candidate command for starting a terminal, with its
// own window-appearance wait budget.
type LaunchStrategy struct {
	Command []string
	Wait    time.Duration
	Poll    time.Duration
}

// Options configures a Machine.
type Options struct {
	// Titles are accepted window titles, most specific first.
	Titles []string
	// Launch candidates, tried in order until one yields a window.
	Launch []LaunchStrategy
	Retry  RetryPolicy
	Logger *slog.Logger
}

// Machine drives a terminal session from unknown to focused and ready.
// A Machine is created fresh per EnsureReady call and discarded afterwards;
// no state survives across tool invocations.
type Machine struct {
	proc    ProcessInspector
	windows WindowQuery
	opts    Options
	state   State

	sleep func(time.Duration) // injected in tests
}

// NewMachine builds a machine over the given collaborators.
func NewMachine(proc ProcessInspector, windows WindowQuery, opts Options) *Machine {
	if opts.Retry.MaxAttempts < 1 {
		opts.Retry.MaxAttempts = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Machine{
		proc:    proc,
		windows: windows,
		opts:    opts,
		state:   StateUnknown,
		sleep:   time.Sleep,
	}
}

// State returns the machine's current lifecycle state.
func (m *Machine) State() State { return m.state }

// EnsureReady drives the machine until a terminal window is running,
// discoverable and has received a best-effort focus signal, or the retry
// budget is exhausted. The fast path skips launching when a terminal is
// already up and focusable.
func (m *Machine) EnsureReady(ctx context.Context) error {
	log := m.opts.Logger

	if m.proc.TerminalRunning() {
		m.state = StateSearching
		if _, found := m.windows.Find(m.opts.Titles); found {
			m.state = StateFocusing
			if m.focus() {
				m.state = StateReady
				return nil
			}
		}
	}

	log.Info("terminal not available, launching")
	m.state = StateLaunching
	if err := m.launchTerminal(ctx); err != nil {
		m.state = StateFailed
		return &TerminalUnavailableError{Reason: err.Error()}
	}

	// Window managers need time to realize a new window, so poll the cheap
	// checks up to the retry budget.
	for attempt := 1; attempt <= m.opts.Retry.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			m.state = StateFailed
			return &TerminalUnavailableError{Reason: err.Error()}
		}

		m.state = StateSearching
		if _, found := m.windows.Find(m.opts.Titles); found {
			m.state = StateFocusing
			if m.focus() {
				log.Info("terminal ready", "attempts", attempt)
				m.state = StateReady
				return nil
			}
		}

		log.Debug("terminal not ready", "attempt", attempt, "max", m.opts.Retry.MaxAttempts)
		m.sleep(m.opts.Retry.Interval)
	}

	m.state = StateFailed
	return &TerminalUnavailableError{
		Reason: fmt.Sprintf("window not available after %d attempts", m.opts.Retry.MaxAttempts),
	}
}

func (m *Machine) focus() bool {
	m.windows.RestoreIfMinimized(m.opts.Titles)
	outcome := m.windows.Activate(m.opts.Titles)
	if outcome == FocusUnconfirmed {
		m.opts.Logger.Warn("focus not verified, proceeding")
	}
	return outcome.Focused()
}

// launchTerminal tries each launch candidate until one produces a process
// that stays alive and yields a discoverable window within its wait budget.
func (m *Machine) launchTerminal(ctx context.Context) error {
	log := m.opts.Logger

	for _, strat := range m.opts.Launch {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := strings.Join(strat.Command, " ")
		log.Info("trying launch command", "command", name)

		handle, err := m.proc.Spawn(strat.Command)
		if err != nil {
			log.Warn("launch failed", "command", name, "error", err)
			continue
		}
		if !handle.Alive() {
			log.Warn("process exited immediately", "command", name, "pid", handle.PID())
			continue
		}

		if m.awaitWindow(handle, strat) {
			log.Info("terminal launched", "command", name, "pid", handle.PID())
			return nil
		}

		log.Warn("window never appeared", "command", name, "waited", strat.Wait)
		if handle.Alive() {
			// Don't leave orphans behind before trying the next candidate.
			if err := handle.Kill(); err != nil {
				log.Warn("failed to kill stalled process", "pid", handle.PID(), "error", err)
			}
		}
	}

	return fmt.Errorf("all launch commands failed")
}

func (m *Machine) awaitWindow(handle ProcessHandle, strat LaunchStrategy) bool {
	poll := strat.Poll
	if poll <= 0 {
		poll = DefaultLaunchPoll
	}

	for waited := time.Duration(0); waited < strat.Wait; waited += poll {
		if !handle.Alive() {
			m.opts.Logger.Warn("terminal process exited prematurely", "pid", handle.PID())
			return false
		}
		if m.proc.TerminalRunning() {
			if _, found := m.windows.Find(m.opts.Titles); found {
				return true
			}
		}
		m.sleep(poll)
	}
	return false
}

// Default readiness constants, mirrored by the config package.
const (
	DefaultRetryAttempts = 10
	DefaultRetryInterval = 500 * time.Millisecond
	DefaultLaunchWait    = 15 * time.Second
	DefaultLaunchPoll    = 500 * time.Millisecond
)
