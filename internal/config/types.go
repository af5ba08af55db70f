package config

import "time"

// Config is the top-level pwsh-mcp configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Terminal TerminalConfig `toml:"terminal"`
	Retry    RetryConfig    `toml:"retry"`
	Execute  ExecuteConfig  `toml:"execute"`
	Capture  CaptureConfig  `toml:"capture"`
}

// ServerConfig is the identity reported verbatim by initialize.
type ServerConfig struct {
	Name            string `toml:"name"`
	Version         string `toml:"version"`
	ProtocolVersion string `toml:"protocol_version"`
}

// TerminalConfig describes how to find and launch the terminal.
type TerminalConfig struct {
	// WindowTitles are matched in order against open window titles.
	WindowTitles []string `toml:"window_titles"`
	// LaunchCommands are tried in order until one yields a window.
	LaunchCommands [][]string `toml:"launch_commands"`
	// LaunchWait bounds how long each command may take to show a window.
	LaunchWait string `toml:"launch_wait"`
	// LaunchPoll is the window-appearance polling interval during launch.
	LaunchPoll string `toml:"launch_poll"`
}

// RetryConfig bounds the find+focus readiness loop.
type RetryConfig struct {
	MaxAttempts int    `toml:"max_attempts"`
	Interval    string `toml:"interval"`
}

// ExecuteConfig tunes script delivery.
type ExecuteConfig struct {
	DefaultTimeout   int    `toml:"default_timeout"`
	SingleLineSettle string `toml:"single_line_settle"`
	MultiLineSettle  string `toml:"multi_line_settle"`
}

// CaptureConfig tunes screenshot capture.
type CaptureConfig struct {
	TitlebarHeight int `toml:"titlebar_height"`
	// OutputDir overrides the default generated-screenshot directory.
	OutputDir string `toml:"output_dir"`
}

// LaunchWaitDuration returns the parsed launch wait, falling back to the
// default for unparseable or non-positive values.
func (t TerminalConfig) LaunchWaitDuration() time.Duration {
	return duration(t.LaunchWait, DefaultLaunchWait)
}

// LaunchPollDuration returns the parsed window-appearance polling interval.
func (t TerminalConfig) LaunchPollDuration() time.Duration {
	return duration(t.LaunchPoll, DefaultLaunchPoll)
}

// IntervalDuration returns the parsed retry interval.
func (r RetryConfig) IntervalDuration() time.Duration {
	return duration(r.Interval, DefaultRetryInterval)
}

// SingleLineSettleDuration returns the parsed single-command settle delay.
func (e ExecuteConfig) SingleLineSettleDuration() time.Duration {
	return duration(e.SingleLineSettle, DefaultSingleLineSettle)
}

// MultiLineSettleDuration returns the parsed multi-line settle delay.
func (e ExecuteConfig) MultiLineSettleDuration() time.Duration {
	return duration(e.MultiLineSettle, DefaultMultiLineSettle)
}

func duration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
