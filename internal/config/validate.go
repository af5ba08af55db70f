package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	if strings.TrimSpace(cfg.Server.Name) == "" {
		errs = append(errs, errors.New("server.name: must not be empty"))
	}
	if strings.TrimSpace(cfg.Server.Version) == "" {
		errs = append(errs, errors.New("server.version: must not be empty"))
	}
	if strings.TrimSpace(cfg.Server.ProtocolVersion) == "" {
		errs = append(errs, errors.New("server.protocol_version: must not be empty"))
	}

	if len(cfg.Terminal.WindowTitles) == 0 {
		errs = append(errs, errors.New("terminal.window_titles: at least one title is required"))
	}
	if len(cfg.Terminal.LaunchCommands) == 0 {
		errs = append(errs, errors.New("terminal.launch_commands: at least one command is required"))
	}
	for i, cmd := range cfg.Terminal.LaunchCommands {
		if len(cmd) == 0 || strings.TrimSpace(cmd[0]) == "" {
			errs = append(errs, fmt.Errorf("terminal.launch_commands[%d]: missing executable", i))
		}
	}
	errs = append(errs, validateDuration("terminal.launch_wait", cfg.Terminal.LaunchWait)...)
	errs = append(errs, validateDuration("terminal.launch_poll", cfg.Terminal.LaunchPoll)...)

	if cfg.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts: must be >= 1, got %d", cfg.Retry.MaxAttempts))
	}
	errs = append(errs, validateDuration("retry.interval", cfg.Retry.Interval)...)

	if cfg.Execute.DefaultTimeout < 1 || cfg.Execute.DefaultTimeout > 300 {
		errs = append(errs, fmt.Errorf("execute.default_timeout: must be between 1 and 300, got %d", cfg.Execute.DefaultTimeout))
	}
	errs = append(errs, validateDuration("execute.single_line_settle", cfg.Execute.SingleLineSettle)...)
	errs = append(errs, validateDuration("execute.multi_line_settle", cfg.Execute.MultiLineSettle)...)

	if cfg.Capture.TitlebarHeight < 0 {
		errs = append(errs, fmt.Errorf("capture.titlebar_height: must be >= 0, got %d", cfg.Capture.TitlebarHeight))
	}

	return errors.Join(errs...)
}

func validateDuration(key, value string) []error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid duration %q: %w", key, value, err)}
	}
	if d <= 0 {
		return []error{fmt.Errorf("%s: must be > 0, got %q", key, value)}
	}
	return nil
}
