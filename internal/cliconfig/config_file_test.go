package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Backend:        "clflushopt",
				Path:           "/mnt/pmem0/probe",
				Size:           "64K",
				Char:           "q",
				LogLevel:       "trace",
				SkipValidation: &trueVal,
				StreamingTail:  &trueVal,
			},
			changed: map[string]bool{},
			expected: Config{
				Backend:        "clflushopt",
				Path:           "/mnt/pmem0/probe",
				Size:           64 << 10,
				Char:           "q",
				LogLevel:       "trace",
				SkipValidation: true,
				StreamingTail:  true,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Backend: "msync",
				Path:    "/config/path",
				Size:    "1M",
			},
			changed: map[string]bool{"path": true, "size": true},
			initial: Config{Path: "/flag/path", Size: 4096},
			expected: Config{
				Backend: "msync",
				Path:    "/flag/path", // unchanged because flag was set
				Size:    4096,
			},
		},
		{
			name: "explicit false overrides",
			fileConfig: FileConfig{
				StreamingTail: &falseVal,
			},
			changed:  map[string]bool{},
			initial:  Config{StreamingTail: true},
			expected: Config{},
		},
		{
			name: "returns error for invalid size",
			fileConfig: FileConfig{
				Size: "several",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backend = "clwb"
path = "/mnt/pmem0/probe"
size = "2M"
char = "p"
log_level = "debug"
streaming_tail = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig failed: %v", err)
	}
	if fc.Backend != "clwb" {
		t.Errorf("Backend = %v, want clwb", fc.Backend)
	}
	if fc.Size != "2M" {
		t.Errorf("Size = %v, want 2M", fc.Size)
	}
	if fc.StreamingTail == nil || !*fc.StreamingTail {
		t.Errorf("StreamingTail = %v, want true", fc.StreamingTail)
	}
	if fc.SkipValidation != nil {
		t.Errorf("SkipValidation = %v, want unset", *fc.SkipValidation)
	}

	if _, err := LoadFileConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("backend = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	p := DefaultConfigPath()
	if p == "" {
		t.Skip("no home directory")
	}
	if !strings.HasSuffix(p, filepath.Join(".pmemops", "config.toml")) {
		t.Errorf("DefaultConfigPath = %v", p)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if !FileExists(dir) {
		t.Error("expected temp dir to exist")
	}
	if FileExists(filepath.Join(dir, "nope")) {
		t.Error("expected missing file to not exist")
	}
}
