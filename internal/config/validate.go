package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rileyhilliard/tegratop/internal/errors"
	"github.com/rileyhilliard/tegratop/internal/telemetry"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tegratop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade tegratop, or regenerate the file with 'tegratop init --force'.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s; the kernel counters don't move faster than that.", MinInterval))
	}

	if cfg.ReadTimeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("read_timeout can't be negative (got %s)", cfg.ReadTimeout),
			"Use 0 to disable the bound, or something like 250ms.")
	}

	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("root '%s' is not an absolute path", cfg.Root),
			"Use / for the live system, or the absolute path of a recorded tree.")
	}

	known := telemetry.Subsystems()
	for _, name := range cfg.Disable {
		if !slices.Contains(known, name) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown subsystem '%s' in disable", name),
				fmt.Sprintf("Available subsystems: %s", strings.Join(known, ", ")))
		}
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode '%s'", cfg.Color),
			"Use auto, always, or never.")
	}

	return nil
}
