// Package winauto is the OS-facing automation driver: process discovery and
// launch, window lookup and focus, clipboard transfer, keystroke injection
// and screen capture. Everything platform-specific lives behind build tags;
// on non-Windows hosts the driver loads but reports terminal automation as
// unsupported, so the protocol surface keeps working.
package winauto

import (
	"image"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/kbinani/screenshot"

	"github.com/maithaen/pwsh-mcp/internal/session"
)

// Controller implements the full server.Driver surface against the host OS.
type Controller struct {
	log *slog.Logger
}

// New returns a driver logging through log.
func New(log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{log: log}
}

// Read returns the current clipboard text.
func (c *Controller) Read() (string, error) {
	return clipboard.ReadAll()
}

// Write replaces the clipboard text.
func (c *Controller) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Grab captures the pixels inside rect from the screen.
func (c *Controller) Grab(rect session.Window) (image.Image, error) {
	return screenshot.CaptureRect(rect.Bounds())
}
