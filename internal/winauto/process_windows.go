//go:build windows

package winauto

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/maithaen/pwsh-mcp/internal/session"
)

// terminalExecutables are the process image names that count as a running
// terminal host, lowercase.
var terminalExecutables = map[string]bool{
	"windowsterminal.exe": true,
	"wt.exe":              true,
	"pwsh.exe":            true,
	"powershell.exe":      true,
	"cmd.exe":             true,
}

// TerminalRunning scans the process table for a known terminal executable.
func (c *Controller) TerminalRunning() bool {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		c.log.Warn("process snapshot failed", "error", err)
		return false
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return false
	}
	for {
		name := strings.ToLower(windows.UTF16ToString(entry.ExeFile[:]))
		if terminalExecutables[name] {
			return true
		}
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			return false
		}
	}
}

// Spawn starts a launch candidate in its own console so the new terminal
// gets a real window instead of inheriting our stdio pipes.
func (c *Controller) Spawn(command []string) (session.ProcessHandle, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty launch command")
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", command[0], err)
	}

	h := &processHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		cmd.Wait()
		close(h.done)
	}()
	c.log.Info("terminal process started", "command", command[0], "pid", cmd.Process.Pid)
	return h, nil
}

type processHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (h *processHandle) PID() int { return h.cmd.Process.Pid }

func (h *processHandle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *processHandle) Kill() error {
	return h.cmd.Process.Kill()
}
