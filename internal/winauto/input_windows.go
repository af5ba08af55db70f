//go:build windows

package winauto

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

var procKeybdEvent = user32.NewProc("keybd_event")

const (
	vkControl = 0x11
	vkReturn  = 0x0D
	vkV       = 0x56

	keyEventfKeyUp = 0x0002
)

func keyDown(vk byte) { procKeybdEvent.Call(uintptr(vk), 0, 0, 0) }
func keyUp(vk byte)   { procKeybdEvent.Call(uintptr(vk), 0, keyEventfKeyUp, 0) }

// PasteAndSubmit places text on the clipboard, pastes it into the focused
// window with Ctrl+V and optionally presses Enter. Paste is used instead of
// per-keystroke typing so multi-line scripts arrive intact.
func (c *Controller) PasteAndSubmit(text string, submit bool) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("staging script on clipboard: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	keyDown(vkControl)
	keyDown(vkV)
	keyUp(vkV)
	keyUp(vkControl)
	time.Sleep(150 * time.Millisecond)

	if submit {
		keyDown(vkReturn)
		keyUp(vkReturn)
	}
	return nil
}
