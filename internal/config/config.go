package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/maithaen/pwsh-mcp/internal/paths"
)

// Documented defaults. The config file overrides them section by section.
const (
	DefaultServerName      = "pwsh-mcp"
	DefaultServerVersion   = "1.1.0"
	DefaultProtocolVersion = "2024-11-05"

	DefaultLaunchWait    = 15 * time.Second
	DefaultLaunchPoll    = 500 * time.Millisecond
	DefaultRetryAttempts = 10
	DefaultRetryInterval = 500 * time.Millisecond

	DefaultTimeoutSeconds   = 30
	DefaultSingleLineSettle = 1 * time.Second
	DefaultMultiLineSettle  = 2 * time.Second

	DefaultTitlebarHeight = 35
)

// DefaultWindowTitles are the accepted terminal window titles, most
// specific first.
func DefaultWindowTitles() []string {
	return []string{"Windows PowerShell", "PowerShell", "Windows Terminal", "Command Prompt", "cmd"}
}

// DefaultLaunchCommands are the launch candidates, tried in order:
// terminal-with-shell, terminal-plain, shell directly, legacy shell.
func DefaultLaunchCommands() [][]string {
	return [][]string{
		{"wt.exe", "-p", "PowerShell"},
		{"wt.exe", "pwsh.exe"},
		{"wt.exe"},
		{"pwsh.exe"},
		{"powershell.exe"},
	}
}

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:            DefaultServerName,
			Version:         DefaultServerVersion,
			ProtocolVersion: DefaultProtocolVersion,
		},
		Terminal: TerminalConfig{
			WindowTitles:   DefaultWindowTitles(),
			LaunchCommands: DefaultLaunchCommands(),
			LaunchWait:     DefaultLaunchWait.String(),
			LaunchPoll:     DefaultLaunchPoll.String(),
		},
		Retry: RetryConfig{
			MaxAttempts: DefaultRetryAttempts,
			Interval:    DefaultRetryInterval.String(),
		},
		Execute: ExecuteConfig{
			DefaultTimeout:   DefaultTimeoutSeconds,
			SingleLineSettle: DefaultSingleLineSettle.String(),
			MultiLineSettle:  DefaultMultiLineSettle.String(),
		},
		Capture: CaptureConfig{
			TitlebarHeight: DefaultTitlebarHeight,
		},
	}
}

// Load reads the config file at the default location.
// A missing file yields the defaults, not an error.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path, layering it
// over the defaults so partial files inherit unset sections.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
