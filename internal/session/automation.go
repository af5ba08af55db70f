package session

import "image"

// Window describes a terminal window's on-screen rectangle at query time.
// Geometry is never cached; the window can move, resize or vanish between
// calls, so callers re-query every time they need it.
type Window struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Bounds returns the window rectangle in image coordinates.
func (w Window) Bounds() image.Rectangle {
	return image.Rect(w.Left, w.Top, w.Left+w.Width, w.Top+w.Height)
}

// FocusOutcome reports the result of a focus attempt. Focus verification is
// unreliable across environments, so an unconfirmed activation still counts
// as focused.
type FocusOutcome int

const (
	// FocusFailed means no window could be activated at all.
	FocusFailed FocusOutcome = iota
	// FocusConfirmed means the activated window was verified as foreground.
	FocusConfirmed
	// FocusUnconfirmed means activation was issued but could not be verified.
	FocusUnconfirmed
)

// Focused reports whether the outcome allows input delivery.
func (f FocusOutcome) Focused() bool { return f != FocusFailed }

func (f FocusOutcome) String() string {
	switch f {
	case FocusConfirmed:
		return "confirmed"
	case FocusUnconfirmed:
		return "unconfirmed"
	default:
		return "failed"
	}
}

// ProcessHandle tracks a spawned terminal process.
type ProcessHandle interface {
	PID() int
	// Alive reports whether the process is still running.
	Alive() bool
	// Kill terminates the process. Used when a launch candidate spawns but
	// never yields a window.
	Kill() error
}

// ProcessInspector answers whether a terminal-like process exists and can
// spawn new ones.
type ProcessInspector interface {
	TerminalRunning() bool
	Spawn(command []string) (ProcessHandle, error)
}

// WindowQuery locates and manipulates terminal windows by candidate title.
type WindowQuery interface {
	// Find returns the first window matching one of titles, in title order.
	Find(titles []string) (Window, bool)
	// RestoreIfMinimized restores a minimized matching window so its
	// geometry and focus become usable.
	RestoreIfMinimized(titles []string)
	// Activate requests foreground focus on the first matching window.
	Activate(titles []string) FocusOutcome
}

// InputInjector delivers text to the focused window. Delivery is
// clipboard-based paste, never per-keystroke typing.
type InputInjector interface {
	PasteAndSubmit(text string, submit bool) error
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// ScreenCapturer grabs the pixels inside a screen rectangle.
type ScreenCapturer interface {
	Grab(rect Window) (image.Image, error)
}
