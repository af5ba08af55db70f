//go:build windows

package winauto

import (
	"strings"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/maithaen/pwsh-mcp/internal/session"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procIsIconic            = user32.NewProc("IsIconic")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
)

const swRestore = 9

type winRect struct {
	Left, Top, Right, Bottom int32
}

type topLevelWindow struct {
	handle uintptr
	title  string
}

// listWindows enumerates visible top-level windows that carry a title.
func listWindows() []topLevelWindow {
	var found []topLevelWindow
	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1
		}
		var buf [512]uint16
		n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if n == 0 {
			return 1
		}
		found = append(found, topLevelWindow{handle: hwnd, title: syscall.UTF16ToString(buf[:n])})
		return 1
	})
	procEnumWindows.Call(cb, 0)
	return found
}

// findWindow returns the first top-level window whose title contains one of
// the candidate titles, honoring candidate order so the most specific title
// wins over generic ones.
func findWindow(titles []string) (uintptr, bool) {
	open := listWindows()
	for _, candidate := range titles {
		want := strings.ToLower(candidate)
		for _, w := range open {
			if strings.Contains(strings.ToLower(w.title), want) {
				return w.handle, true
			}
		}
	}
	return 0, false
}

// Find locates a terminal window and reports its screen rectangle.
func (c *Controller) Find(titles []string) (session.Window, bool) {
	hwnd, ok := findWindow(titles)
	if !ok {
		return session.Window{}, false
	}
	var r winRect
	if ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ret == 0 {
		return session.Window{}, false
	}
	return session.Window{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}, true
}

// RestoreIfMinimized restores a minimized terminal window so it can be
// focused and captured.
func (c *Controller) RestoreIfMinimized(titles []string) {
	hwnd, ok := findWindow(titles)
	if !ok {
		return
	}
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		procShowWindow.Call(hwnd, swRestore)
		time.Sleep(200 * time.Millisecond)
		c.log.Debug("restored minimized terminal window")
	}
}

// Activate brings the terminal window to the foreground. Windows refuses
// SetForegroundWindow for background processes in some configurations, so a
// failed verification is reported as unconfirmed rather than failed.
func (c *Controller) Activate(titles []string) session.FocusOutcome {
	hwnd, ok := findWindow(titles)
	if !ok {
		return session.FocusFailed
	}

	procSetForegroundWindow.Call(hwnd)
	time.Sleep(100 * time.Millisecond)

	if fg, _, _ := procGetForegroundWindow.Call(); fg == hwnd {
		return session.FocusConfirmed
	}
	return session.FocusUnconfirmed
}
