package cliconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bft-labs/pmemops/pkg/log"
	"github.com/bft-labs/pmemops/pkg/pmem"
)

// Config holds CLI configuration for pmemctl.
type Config struct {
	Backend string
	Path    string
	Size    int
	Char    string

	LogLevel       string
	SkipValidation bool
	StreamingTail  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Backend:  "auto",
		Size:     1 << 20, // 1MiB
		Char:     "c",
		LogLevel: "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = "auto"
	}
	if c.Backend != "auto" {
		if _, err := pmem.ParseKind(c.Backend); err != nil {
			return fmt.Errorf("backend: %w", err)
		}
	}

	if c.Size < 0 {
		return fmt.Errorf("size must not be negative")
	}
	if len(c.Char) != 1 {
		return fmt.Errorf("char must be a single byte, got %q", c.Char)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// FillByte returns the byte fill writes.
func (c *Config) FillByte() byte {
	if len(c.Char) == 0 {
		return 'c'
	}
	return c.Char[0]
}

// Kind resolves the configured backend against caps.
func (c *Config) Kind(caps pmem.Capabilities) (pmem.Kind, error) {
	return pmem.ResolveKind(c.Backend, caps)
}

// BackendOptions translates the configuration into backend options.
func (c *Config) BackendOptions(logger log.Logger) []pmem.Option {
	opts := []pmem.Option{pmem.WithLogger(logger)}
	if c.SkipValidation {
		opts = append(opts, pmem.WithSkipValidation())
	}
	if c.StreamingTail {
		opts = append(opts, pmem.WithStreamingTail())
	}
	return opts
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setSizeFromString parses a byte count with an optional K, M or G suffix
// (powers of 1024).
func (s *configSetter) setSizeFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := ParseSize(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if n <= 0 {
		return nil
	}
	*dst = n
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// ParseSize parses "4096", "64K", "2M" or "1G".
func ParseSize(v string) (int, error) {
	v = strings.TrimSpace(strings.ToUpper(v))
	v = strings.TrimSuffix(v, "IB")
	v = strings.TrimSuffix(v, "B")

	mult := 1
	switch {
	case strings.HasSuffix(v, "K"):
		mult = 1 << 10
	case strings.HasSuffix(v, "M"):
		mult = 1 << 20
	case strings.HasSuffix(v, "G"):
		mult = 1 << 30
	}
	if mult != 1 {
		v = v[:len(v)-1]
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}
