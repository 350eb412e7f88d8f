// Package config loads per-project routecraft configuration from a
// routecraft.toml file: custom type converters and logging settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfig is the parsed contents of a routecraft.toml file.
type ProjectConfig struct {
	// Log holds the [log] section. cmd/routecraft decodes it but does not
	// apply it: its slog handler is set only by the --debug flag.
	Log LogConfig `toml:"log"`

	// Converters maps custom type names (as written in a pattern's
	// ":type" constraint) to an external command that performs the
	// conversion: the raw argument is appended as the command's last
	// argument and the command's stdout (trimmed) becomes the bound
	// value's string representation.
	Converters map[string]ConverterSource `toml:"converters"`
}

// LogConfig is the decoded [log] section of routecraft.toml.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	JSON  bool   `toml:"json"`
}

// ConverterSource describes an external command used as a custom type
// converter.
type ConverterSource struct {
	Command []string `toml:"command"`
}

// LoadProjectConfig loads a routecraft.toml file from path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// FindProjectConfig searches for routecraft.toml starting from dir and
// walking up to parent directories, stopping at a .git boundary. It
// returns ("", nil, nil) if no config is found — the caller falls back
// to defaults rather than treating this as an error.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "routecraft.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}
