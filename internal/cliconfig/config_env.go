package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PMEMOPS_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("backend", os.Getenv("PMEMOPS_BACKEND"), &cfg.Backend)
	s.setString("path", os.Getenv("PMEMOPS_PATH"), &cfg.Path)
	s.setString("char", os.Getenv("PMEMOPS_CHAR"), &cfg.Char)
	s.setString("log-level", os.Getenv("PMEMOPS_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setSizeFromString("size", os.Getenv("PMEMOPS_SIZE"), &cfg.Size); err != nil {
		return err
	}

	s.setBoolFromString("skip-validation", os.Getenv("PMEMOPS_SKIP_VALIDATION"), &cfg.SkipValidation)
	s.setBoolFromString("streaming-tail", os.Getenv("PMEMOPS_STREAMING_TAIL"), &cfg.StreamingTail)

	return nil
}
