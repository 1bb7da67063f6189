// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/coral-mesh/rowcut/internal/constants"
	"github.com/coral-mesh/rowcut/internal/safe"
)

// Loader handles locating, loading and saving the config file.
type Loader struct {
	path string
	// explicit is set when the path came from a flag or ROWCUT_CONFIG, in
	// which case the file must exist.
	explicit bool
}

// NewLoader creates a new config loader.
// The config file is resolved in this order:
//  1. explicitPath (the --config flag).
//  2. ROWCUT_CONFIG environment variable.
//  3. ~/.rowcut/config.yaml.
//
// Without a home directory the loader has no default file and Load returns
// defaults with env var overrides applied.
func NewLoader(explicitPath string) *Loader {
	if explicitPath != "" {
		return &Loader{path: explicitPath, explicit: true}
	}

	if p := os.Getenv(constants.ConfigPathEnv); p != "" {
		return &Loader{path: p, explicit: true}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &Loader{}
	}
	return &Loader{path: filepath.Join(homeDir, constants.DefaultDir, constants.ConfigFile)}
}

// Path returns the config file path, or "" when none could be determined.
func (l *Loader) Path() string {
	return l.path
}

// Load loads the configuration: defaults, then the file, then environment
// variables. The result is validated.
func (l *Loader) Load() (*Config, error) {
	layered := NewLayeredLoader()
	layered.requireFile = l.explicit
	return layered.Load(l.path)
}

// Save writes cfg to the config file, creating its directory if needed.
func (l *Loader) Save(cfg *Config, logger zerolog.Logger) error {
	if l.path == "" {
		return fmt.Errorf("no config path: home directory is unknown and %s is not set", constants.ConfigPathEnv)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	//nolint:gosec // G301: Directory needs standard permissions for traversal
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = safe.WriteFileAtomic(l.path, 0600, logger, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
