//go:build !windows

package winauto

import (
	"fmt"
	"runtime"

	"github.com/maithaen/pwsh-mcp/internal/session"
)

// Terminal automation needs the Win32 window and input APIs. On other
// platforms the driver stays inert: discovery finds nothing, launching and
// input delivery fail with a clear error, and only clipboard and screen
// capture (which have portable backends) keep working.

func (c *Controller) TerminalRunning() bool { return false }

func (c *Controller) Spawn(command []string) (session.ProcessHandle, error) {
	return nil, fmt.Errorf("terminal launch is not supported on %s", runtime.GOOS)
}

func (c *Controller) Find(titles []string) (session.Window, bool) {
	return session.Window{}, false
}

func (c *Controller) RestoreIfMinimized(titles []string) {}

func (c *Controller) Activate(titles []string) session.FocusOutcome {
	return session.FocusFailed
}

func (c *Controller) PasteAndSubmit(text string, submit bool) error {
	return fmt.Errorf("keyboard injection is not supported on %s", runtime.GOOS)
}
