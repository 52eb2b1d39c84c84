package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/tegratop/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "minimum interval",
			mutate: func(c *Config) { c.Interval = MinInterval },
		},
		{
			name:   "read timeout disabled",
			mutate: func(c *Config) { c.ReadTimeout = 0 },
		},
		{
			name:   "known subsystems",
			mutate: func(c *Config) { c.Disable = []string{"gpu", "engines", "board"} },
		},
		{
			name:   "empty root",
			mutate: func(c *Config) { c.Root = "" },
		},
		{
			name:        "future version",
			mutate:      func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			errContains: "from the future",
		},
		{
			name:        "interval too short",
			mutate:      func(c *Config) { c.Interval = 100 * time.Millisecond },
			errContains: "Interval 100ms is too short",
		},
		{
			name:        "negative read timeout",
			mutate:      func(c *Config) { c.ReadTimeout = -time.Second },
			errContains: "can't be negative",
		},
		{
			name:        "relative root",
			mutate:      func(c *Config) { c.Root = "rootfs" },
			errContains: "not an absolute path",
		},
		{
			name:        "unknown subsystem",
			mutate:      func(c *Config) { c.Disable = []string{"gpu", "dla"} },
			errContains: "Unknown subsystem 'dla'",
		},
		{
			name:        "unknown color",
			mutate:      func(c *Config) { c.Color = "sometimes" },
			errContains: "Unknown color mode 'sometimes'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestValidate_SuggestsSubsystems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disable = []string{"nope"}

	var e *errors.Error
	require.True(t, errors.As(Validate(cfg), &e))
	assert.Contains(t, e.Suggestion, "cpu")
	assert.Contains(t, e.Suggestion, "thermal")
}
