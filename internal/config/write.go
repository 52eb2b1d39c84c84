package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/tegratop/internal/errors"
)

const fileHeader = `# tegratop configuration
# Every key can be overridden with TEGRATOP_<KEY>, e.g. TEGRATOP_INTERVAL=2s.`

// Marshal renders cfg as a commented YAML document. Durations are written
// as strings ("1s") rather than nanosecond integers.
func Marshal(cfg *Config) ([]byte, error) {
	log := mapping(
		pair("file", scalar("!!str", cfg.Log.File), ""),
		pair("debug", scalar("!!bool", strconv.FormatBool(cfg.Log.Debug)), ""),
	)

	disable := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, name := range cfg.Disable {
		disable.Content = append(disable.Content, scalar("!!str", name))
	}

	root := mapping(
		pair("version", scalar("!!int", strconv.Itoa(cfg.Version)), ""),
		pair("interval", scalar("!!str", cfg.Interval.String()), "# time between samples (minimum "+MinInterval.String()+")"),
		pair("read_timeout", scalar("!!str", cfg.ReadTimeout.String()), "# bound on each kernel file read; 0s disables"),
		pair("root", scalar("!!str", cfg.Root), "# prefix for every kernel path"),
		pair("log", log, ""),
		pair("disable", disable, "# subsystems to skip"),
		pair("color", scalar("!!str", cfg.Color), "# auto, always, or never"),
	)
	root.HeadComment = fileHeader

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Write saves cfg to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to create directory for %s", path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}

type keyValue struct {
	key, value *yaml.Node
}

func pair(key string, value *yaml.Node, comment string) keyValue {
	k := scalar("!!str", key)
	k.LineComment = comment
	return keyValue{key: k, value: value}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mapping(pairs ...keyValue) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range pairs {
		n.Content = append(n.Content, p.key, p.value)
	}
	return n
}
