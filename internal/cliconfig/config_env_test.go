package cliconfig

import (
	"os"
	"testing"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"PMEMOPS_BACKEND":         "clwb",
				"PMEMOPS_PATH":            "/mnt/pmem0/probe",
				"PMEMOPS_SIZE":            "2M",
				"PMEMOPS_CHAR":            "z",
				"PMEMOPS_LOG_LEVEL":       "debug",
				"PMEMOPS_SKIP_VALIDATION": "true",
				"PMEMOPS_STREAMING_TAIL":  "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Backend:        "clwb",
				Path:           "/mnt/pmem0/probe",
				Size:           2 << 20,
				Char:           "z",
				LogLevel:       "debug",
				SkipValidation: true,
				StreamingTail:  true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"PMEMOPS_BACKEND": "msync",
				"PMEMOPS_PATH":    "/env/path",
			},
			changed: map[string]bool{"backend": true},
			initial: Config{Backend: "clwb"},
			expected: Config{
				Backend: "clwb",
				Path:    "/env/path",
			},
		},
		{
			name: "returns error for invalid size",
			envVars: map[string]string{
				"PMEMOPS_SIZE": "huge",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"PMEMOPS_SKIP_VALIDATION": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{SkipValidation: true},
			expected: Config{},
		},
		{
			name:     "unset vars leave config alone",
			envVars:  map[string]string{},
			changed:  map[string]bool{},
			initial:  DefaultConfig(),
			expected: DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
