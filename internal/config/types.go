package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Color modes accepted by the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	// MinInterval is the shortest tick the sampler accepts.
	MinInterval = 250 * time.Millisecond
	// DefaultLogFile is where logs go; the dashboard owns the terminal.
	DefaultLogFile = "/tmp/tegratop.log"
)

// Config represents the complete tegratop.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the time between samples.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// ReadTimeout bounds each pseudo-file read. 0 disables the bound.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`

	// Root prefixes every kernel path, for chroots and recorded trees.
	Root string `yaml:"root" mapstructure:"root"`

	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Disable lists subsystems that are never probed.
	Disable []string `yaml:"disable" mapstructure:"disable"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is not a terminal.
	Color string `yaml:"color" mapstructure:"color"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `yaml:"file" mapstructure:"file"`
	Debug bool   `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Interval:    time.Second,
		ReadTimeout: 250 * time.Millisecond,
		Root:        "/",
		Log: LogConfig{
			File: DefaultLogFile,
		},
		Disable: []string{},
		Color:   ColorAuto,
	}
}

// UseColor reports whether output should be colored given whether it goes
// to a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
