package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHandle struct {
	pid    int
	alive  bool
	killed bool
}

func (h *fakeHandle) PID() int    { return h.pid }
func (h *fakeHandle) Alive() bool { return h.alive && !h.killed }
func (h *fakeHandle) Kill() error { h.killed = true; return nil }

type spawnResult struct {
	handle *fakeHandle
	err    error
}

type fakeProc struct {
	running      bool
	runningCalls int
	spawned      [][]string
	results      []spawnResult
}

func (p *fakeProc) TerminalRunning() bool {
	p.runningCalls++
	return p.running
}

func (p *fakeProc) Spawn(command []string) (ProcessHandle, error) {
	p.spawned = append(p.spawned, command)
	if len(p.results) == 0 {
		return nil, errors.New("no spawn result configured")
	}
	r := p.results[0]
	p.results = p.results[1:]
	if r.err != nil {
		return nil, r.err
	}
	if r.handle.Alive() {
		p.running = true
	}
	return r.handle, nil
}

type fakeWindows struct {
	win           Window
	found         bool
	foundAfter    int
	findCalls     int
	restoreCalls  int
	activateCalls int
	outcome       FocusOutcome
}

func (w *fakeWindows) Find(titles []string) (Window, bool) {
	w.findCalls++
	if !w.found || w.findCalls <= w.foundAfter {
		return Window{}, false
	}
	return w.win, true
}

func (w *fakeWindows) RestoreIfMinimized(titles []string) { w.restoreCalls++ }

func (w *fakeWindows) Activate(titles []string) FocusOutcome {
	w.activateCalls++
	return w.outcome
}

func testOptions() Options {
	return Options{
		Titles: []string{"PowerShell"},
		Launch: []LaunchStrategy{
			{Command: []string{"wt.exe", "-p", "PowerShell"}, Wait: 2 * time.Second, Poll: 500 * time.Millisecond},
			{Command: []string{"pwsh.exe"}, Wait: 2 * time.Second, Poll: 500 * time.Millisecond},
		},
		Retry: RetryPolicy{MaxAttempts: 10, Interval: 500 * time.Millisecond},
	}
}

func newTestMachine(proc *fakeProc, windows *fakeWindows, opts Options) (*Machine, *[]time.Duration) {
	m := NewMachine(proc, windows, opts)
	sleeps := &[]time.Duration{}
	m.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return m, sleeps
}

func TestEnsureReadyFastPath(t *testing.T) {
	proc := &fakeProc{running: true}
	windows := &fakeWindows{found: true, outcome: FocusConfirmed}
	m, sleeps := newTestMachine(proc, windows, testOptions())

	if err := m.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	if m.State() != StateReady {
		t.Fatalf("state = %v, want ready", m.State())
	}
	if len(proc.spawned) != 0 {
		t.Fatalf("spawned %d processes on fast path, want 0", len(proc.spawned))
	}
	if windows.restoreCalls != 1 {
		t.Fatalf("restore calls = %d, want 1", windows.restoreCalls)
	}
	if len(*sleeps) != 0 {
		t.Fatalf("slept %d times on fast path, want 0", len(*sleeps))
	}
}

func TestEnsureReadyUnconfirmedFocusStillProceeds(t *testing.T) {
	proc := &fakeProc{running: true}
	windows := &fakeWindows{found: true, outcome: FocusUnconfirmed}
	m, _ := newTestMachine(proc, windows, testOptions())

	if err := m.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	if m.State() != StateReady {
		t.Fatalf("state = %v, want ready", m.State())
	}
}

func TestEnsureReadyLaunchesWhenNoTerminal(t *testing.T) {
	proc := &fakeProc{
		results: []spawnResult{{handle: &fakeHandle{pid: 100, alive: true}}},
	}
	windows := &fakeWindows{found: true, outcome: FocusConfirmed}
	m, _ := newTestMachine(proc, windows, testOptions())

	if err := m.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	if len(proc.spawned) != 1 {
		t.Fatalf("spawned = %d commands, want 1", len(proc.spawned))
	}
	if got := proc.spawned[0][0]; got != "wt.exe" {
		t.Fatalf("first launch command = %q, want wt.exe", got)
	}
}

func TestEnsureReadyFallsBackWhenProcessDiesImmediately(t *testing.T) {
	proc := &fakeProc{
		results: []spawnResult{
			{handle: &fakeHandle{pid: 100, alive: false}},
			{handle: &fakeHandle{pid: 101, alive: true}},
		},
	}
	windows := &fakeWindows{found: true, outcome: FocusConfirmed}
	m, _ := newTestMachine(proc, windows, testOptions())

	if err := m.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	if len(proc.spawned) != 2 {
		t.Fatalf("spawned = %d commands, want 2", len(proc.spawned))
	}
	if got := proc.spawned[1][0]; got != "pwsh.exe" {
		t.Fatalf("second launch command = %q, want pwsh.exe", got)
	}
}

func TestEnsureReadyFallsBackOnSpawnError(t *testing.T) {
	proc := &fakeProc{
		results: []spawnResult{
			{err: errors.New("command not found")},
			{handle: &fakeHandle{pid: 101, alive: true}},
		},
	}
	windows := &fakeWindows{found: true, outcome: FocusConfirmed}
	m, _ := newTestMachine(proc, windows, testOptions())

	if err := m.EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady() error = %v", err)
	}
	if len(proc.spawned) != 2 {
		t.Fatalf("spawned = %d commands, want 2", len(proc.spawned))
	}
}

func TestEnsureReadyKillsStalledLaunch(t *testing.T) {
	stalled := &fakeHandle{pid: 100, alive: true}
	proc := &fakeProc{
		results: []spawnResult{
			{handle: stalled},
			{err: errors.New("command not found")},
		},
	}
	// Process stays alive but no window ever appears.
	windows := &fakeWindows{found: false}
	m, _ := newTestMachine(proc, windows, testOptions())

	err := m.EnsureReady(context.Background())
	var unavailable *TerminalUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("EnsureReady() error = %v, want TerminalUnavailableError", err)
	}
	if !stalled.killed {
		t.Fatal("stalled launch process was not killed")
	}
	if m.State() != StateFailed {
		t.Fatalf("state = %v, want failed", m.State())
	}
}

func TestEnsureReadyRetriesAreBounded(t *testing.T) {
	proc := &fakeProc{
		results: []spawnResult{{handle: &fakeHandle{pid: 100, alive: true}}},
	}
	// Window is discoverable but focus never succeeds.
	windows := &fakeWindows{found: true, outcome: FocusFailed}
	opts := testOptions()
	m, sleeps := newTestMachine(proc, windows, opts)

	err := m.EnsureReady(context.Background())
	var unavailable *TerminalUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("EnsureReady() error = %v, want TerminalUnavailableError", err)
	}

	// One activate on the fast path is skipped (terminal not running at
	// entry), so every activate belongs to the bounded retry loop.
	if windows.activateCalls != opts.Retry.MaxAttempts {
		t.Fatalf("activate calls = %d, want %d", windows.activateCalls, opts.Retry.MaxAttempts)
	}
	retrySleeps := 0
	for _, d := range *sleeps {
		if d == opts.Retry.Interval {
			retrySleeps++
		}
	}
	if retrySleeps != opts.Retry.MaxAttempts {
		t.Fatalf("retry sleeps = %d, want %d", retrySleeps, opts.Retry.MaxAttempts)
	}
}

func TestEnsureReadyFailsWhenAllLaunchCommandsFail(t *testing.T) {
	proc := &fakeProc{
		results: []spawnResult{
			{err: errors.New("not found")},
			{err: errors.New("not found")},
		},
	}
	windows := &fakeWindows{}
	m, _ := newTestMachine(proc, windows, testOptions())

	err := m.EnsureReady(context.Background())
	var unavailable *TerminalUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("EnsureReady() error = %v, want TerminalUnavailableError", err)
	}
	if m.State() != StateFailed {
		t.Fatalf("state = %v, want failed", m.State())
	}
}

func TestEnsureReadyHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &fakeProc{}
	windows := &fakeWindows{}
	m, _ := newTestMachine(proc, windows, testOptions())

	err := m.EnsureReady(ctx)
	var unavailable *TerminalUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("EnsureReady() error = %v, want TerminalUnavailableError", err)
	}
}

func TestStateString(t *testing.T) {
	pairs := map[State]string{
		StateUnknown:   "unknown",
		StateLaunching: "launching",
		StateSearching: "searching",
		StateFocusing:  "focusing",
		StateReady:     "ready",
		StateFailed:    "failed",
	}
	for state, want := range pairs {
		if got := state.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}

func TestFocusOutcomeFocused(t *testing.T) {
	if FocusFailed.Focused() {
		t.Fatal("FocusFailed.Focused() = true, want false")
	}
	if !FocusConfirmed.Focused() {
		t.Fatal("FocusConfirmed.Focused() = false, want true")
	}
	if !FocusUnconfirmed.Focused() {
		t.Fatal("FocusUnconfirmed.Focused() = false, want true")
	}
}
