package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config; size is a string so "64M" reads naturally.
type FileConfig struct {
	Backend        string `toml:"backend"`
	Path           string `toml:"path"`
	Size           string `toml:"size"`
	Char           string `toml:"char"`
	LogLevel       string `toml:"log_level"`
	SkipValidation *bool  `toml:"skip_validation"`
	StreamingTail  *bool  `toml:"streaming_tail"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.pmemops/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".pmemops", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("backend", fc.Backend, &cfg.Backend)
	s.setString("path", fc.Path, &cfg.Path)
	s.setString("char", fc.Char, &cfg.Char)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setSizeFromString("size", fc.Size, &cfg.Size); err != nil {
		return err
	}

	s.setBool("skip-validation", fc.SkipValidation, &cfg.SkipValidation)
	s.setBool("streaming-tail", fc.StreamingTail, &cfg.StreamingTail)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
