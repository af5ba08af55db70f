package paths

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the pwsh-mcp config directory.
// PWSH_MCP_CONFIG_DIR overrides the platform default.
func ConfigDir() string {
	if v := os.Getenv("PWSH_MCP_CONFIG_DIR"); v != "" {
		return v
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "pwsh-mcp")
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CaptureDir returns the default directory for generated screenshots.
// PWSH_MCP_CAPTURE_DIR overrides it.
func CaptureDir() string {
	if v := os.Getenv("PWSH_MCP_CAPTURE_DIR"); v != "" {
		return v
	}
	return filepath.Join(os.TempDir(), "pwsh-mcp", "captures")
}

// EnsureDir creates a directory and parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
