package capture

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/maithaen/pwsh-mcp/internal/paths"
	"github.com/maithaen/pwsh-mcp/internal/session"
)

// DefaultTitlebarHeight is the fixed titlebar exclusion, in pixels.
const DefaultTitlebarHeight = 35

// Error reports a capture failure. These surface as tool-level failures,
// never as protocol errors.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "capture failed: " + e.Reason }

// Config tunes the capturer.
type Config struct {
	// Titles are the accepted terminal window titles, most specific first.
	Titles []string
	// TitlebarHeight is subtracted from the top when exclusion is requested.
	TitlebarHeight int
	// OutputDir overrides the default generated-screenshot directory.
	OutputDir string
	Logger    *slog.Logger
}

// Capturer screenshots the terminal window and persists the image.
type Capturer struct {
	windows session.WindowQuery
	screen  session.ScreenCapturer
	cfg     Config

	now func() time.Time // injected in tests
}

// Report describes a saved screenshot.
type Report struct {
	SavedTo         string
	Width           int
	Height          int
	FileSize        int64
	ExcludeTitlebar bool
	CustomPath      bool
}

// New builds a capturer over the given collaborators.
func New(windows session.WindowQuery, screen session.ScreenCapturer, cfg Config) *Capturer {
	if cfg.TitlebarHeight <= 0 {
		cfg.TitlebarHeight = DefaultTitlebarHeight
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Capturer{windows: windows, screen: screen, cfg: cfg, now: time.Now}
}

// Capture locates the terminal window with a fresh query, grabs its pixels
// and writes a PNG to the resolved path.
func (c *Capturer) Capture(savePath string, excludeTitlebar bool) (Report, error) {
	win, found := c.windows.Find(c.cfg.Titles)
	if !found {
		return Report{}, &Error{Reason: "terminal window not found; it may not be visible or accessible"}
	}

	rect := win
	if excludeTitlebar {
		rect.Top += c.cfg.TitlebarHeight
		rect.Height -= c.cfg.TitlebarHeight
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return Report{}, &Error{Reason: fmt.Sprintf("invalid capture geometry %dx%d", rect.Width, rect.Height)}
	}

	img, err := c.screen.Grab(rect)
	if err != nil {
		return Report{}, &Error{Reason: fmt.Sprintf("grabbing screen region: %v", err)}
	}

	finalPath := c.resolvePath(savePath)
	if err := paths.EnsureDir(filepath.Dir(finalPath)); err != nil {
		return Report{}, &Error{Reason: fmt.Sprintf("creating output directory: %v", err)}
	}

	f, err := os.Create(finalPath)
	if err != nil {
		return Report{}, &Error{Reason: fmt.Sprintf("creating %s: %v", finalPath, err)}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(finalPath)
		return Report{}, &Error{Reason: fmt.Sprintf("encoding png: %v", err)}
	}
	if err := f.Close(); err != nil {
		return Report{}, &Error{Reason: fmt.Sprintf("writing %s: %v", finalPath, err)}
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return Report{}, &Error{Reason: fmt.Sprintf("checking %s: %v", finalPath, err)}
	}

	bounds := img.Bounds()
	c.cfg.Logger.Info("screenshot saved", "path", finalPath, "bytes", info.Size())
	return Report{
		SavedTo:         finalPath,
		Width:           bounds.Dx(),
		Height:          bounds.Dy(),
		FileSize:        info.Size(),
		ExcludeTitlebar: excludeTitlebar,
		CustomPath:      savePath != "",
	}, nil
}

// resolvePath normalizes a caller-supplied path to a .png extension, or
// generates a timestamped path under the capture directory.
func (c *Capturer) resolvePath(savePath string) string {
	if savePath != "" {
		if !strings.EqualFold(filepath.Ext(savePath), ".png") {
			savePath += ".png"
		}
		if abs, err := filepath.Abs(savePath); err == nil {
			return abs
		}
		return savePath
	}

	dir := c.cfg.OutputDir
	if dir == "" {
		dir = paths.CaptureDir()
	}
	return filepath.Join(dir, fmt.Sprintf("terminal_capture_%d.png", c.now().Unix()))
}
