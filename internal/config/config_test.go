package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/s4spectre/internal/gateway"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := ConfigPath(); got != "s4spectre.yaml" {
		t.Errorf("expected s4spectre.yaml, got %q", got)
	}
}

func TestConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	expected := filepath.Join(dir, "s4spectre", "s4spectre.yaml")
	if got := ConfigPath(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StorageDir != ".s4spectre" {
		t.Errorf("expected storage_dir=.s4spectre, got %s", cfg.StorageDir)
	}
	if cfg.FailThreshold != 0 {
		t.Errorf("expected fail_threshold=0, got %d", cfg.FailThreshold)
	}
	if cfg.Format != "text" {
		t.Errorf("expected format=text, got %s", cfg.Format)
	}
	if cfg.LastRuns != 7 {
		t.Errorf("expected last_runs=7, got %d", cfg.LastRuns)
	}
	if cfg.Gateway.Mode != "mock" {
		t.Errorf("expected gateway.mode=mock, got %s", cfg.Gateway.Mode)
	}
	if cfg.Gateway.Timeout != 30*time.Second {
		t.Errorf("expected gateway.timeout=30s, got %s", cfg.Gateway.Timeout)
	}
	if cfg.Gateway.VSPBinary != "vsp" {
		t.Errorf("expected gateway.vsp_binary=vsp, got %s", cfg.Gateway.VSPBinary)
	}
	if len(cfg.Prefixes) != 2 || cfg.Prefixes[0] != "Z*" || cfg.Prefixes[1] != "Y*" {
		t.Errorf("unexpected prefixes %v", cfg.Prefixes)
	}
}

func TestValidate(t *testing.T) {
	with := func(mutate func(*Config)) Config {
		cfg := DefaultConfig()
		mutate(cfg)
		return *cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid defaults",
			cfg:  *DefaultConfig(),
		},
		{
			name: "valid both format",
			cfg:  with(func(c *Config) { c.Format = "both" }),
		},
		{
			name: "valid live mode",
			cfg: with(func(c *Config) {
				c.Gateway.Mode = "live"
				c.Gateway.URL = "https://erp.example.com"
			}),
		},
		{
			name:    "invalid format",
			cfg:     with(func(c *Config) { c.Format = "xml" }),
			wantErr: true,
			errMsg:  "invalid format",
		},
		{
			name:    "negative threshold",
			cfg:     with(func(c *Config) { c.FailThreshold = -1 }),
			wantErr: true,
			errMsg:  "fail_threshold cannot be negative",
		},
		{
			name:    "threshold above 100",
			cfg:     with(func(c *Config) { c.FailThreshold = 101 }),
			wantErr: true,
			errMsg:  "fail_threshold cannot exceed 100",
		},
		{
			name:    "zero last_runs",
			cfg:     with(func(c *Config) { c.LastRuns = 0 }),
			wantErr: true,
			errMsg:  "last_runs must be positive",
		},
		{
			name:    "empty storage_dir",
			cfg:     with(func(c *Config) { c.StorageDir = "" }),
			wantErr: true,
			errMsg:  "storage_dir cannot be empty",
		},
		{
			name:    "unknown gateway mode",
			cfg:     with(func(c *Config) { c.Gateway.Mode = "rfc" }),
			wantErr: true,
			errMsg:  "invalid gateway.mode",
		},
		{
			name:    "live mode without url",
			cfg:     with(func(c *Config) { c.Gateway.Mode = "live" }),
			wantErr: true,
			errMsg:  "gateway.url is required",
		},
		{
			name:    "negative timeout",
			cfg:     with(func(c *Config) { c.Gateway.Timeout = -time.Second }),
			wantErr: true,
			errMsg:  "gateway.timeout cannot be negative",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && tt.errMsg != "" {
				if !contains(err.Error(), tt.errMsg) {
					t.Fatalf("expected error to contain %q, got %q", tt.errMsg, err.Error())
				}
			}
		})
	}
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestShouldFailOnThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		score     int
		expected  bool
	}{
		{"disabled", 0, 10, false},
		{"above threshold", 60, 75, false},
		{"at threshold", 60, 60, false},
		{"below threshold", 60, 59, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{FailThreshold: tt.threshold}
			if got := cfg.ShouldFailOnThreshold(tt.score); got != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGetStoragePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name       string
		storageDir string
		want       string
	}{
		{"home expansion", "~/s4-data", filepath.Join(home, "s4-data")},
		{"absolute path", "/tmp/s4spectre", "/tmp/s4spectre"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{StorageDir: tt.storageDir}
			path, err := cfg.GetStoragePath()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if path != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, path)
			}
		})
	}

	cfg := &Config{StorageDir: "."}
	path, err := cfg.GetStoragePath()
	if err != nil || !filepath.IsAbs(path) {
		t.Fatalf("expected absolute path for relative dir, got %q (%v)", path, err)
	}
}

func TestGatewayConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gateway.Mode = "files"
	cfg.Gateway.Root = "/src"
	cfg.Gateway.Client = "100"

	gw := cfg.GatewayConfig()
	if gw.Mode != gateway.ModeFiles {
		t.Errorf("expected files mode, got %s", gw.Mode)
	}
	if gw.Root != "/src" || gw.Client != "100" {
		t.Errorf("fields not carried over: %+v", gw)
	}
	if gw.Timeout != gateway.DefaultTimeout {
		t.Errorf("expected default timeout, got %s", gw.Timeout)
	}
}

func TestLoadFromFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s4spectre.yaml")

	content := `storage_dir: /custom/path
fail_threshold: 70
format: json
last_runs: 10
verbose: true
rules_file: ./rules.toml
prefixes:
  - "ZFI*"
gateway:
  mode: live
  url: https://erp.example.com
  client: "200"
  timeout: 45s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.StorageDir != "/custom/path" {
		t.Errorf("expected storage_dir=/custom/path, got %s", cfg.StorageDir)
	}
	if cfg.FailThreshold != 70 {
		t.Errorf("expected fail_threshold=70, got %d", cfg.FailThreshold)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format=json, got %s", cfg.Format)
	}
	if cfg.LastRuns != 10 {
		t.Errorf("expected last_runs=10, got %d", cfg.LastRuns)
	}
	if !cfg.Verbose {
		t.Error("expected verbose=true")
	}
	if cfg.RulesFile != "./rules.toml" {
		t.Errorf("expected rules_file, got %q", cfg.RulesFile)
	}
	if len(cfg.Prefixes) != 1 || cfg.Prefixes[0] != "ZFI*" {
		t.Errorf("expected prefixes [ZFI*], got %v", cfg.Prefixes)
	}
	if cfg.Gateway.Mode != "live" || cfg.Gateway.URL != "https://erp.example.com" {
		t.Errorf("unexpected gateway %+v", cfg.Gateway)
	}
	if cfg.Gateway.Client != "200" {
		t.Errorf("expected client 200, got %q", cfg.Gateway.Client)
	}
	if cfg.Gateway.Timeout != 45*time.Second {
		t.Errorf("expected timeout 45s, got %s", cfg.Gateway.Timeout)
	}
	if cfg.Gateway.VSPBinary != "vsp" {
		t.Errorf("expected default vsp_binary, got %q", cfg.Gateway.VSPBinary)
	}
}

func TestLoadFromFileInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid format", "format: xml\n"},
		{"unknown mode", "gateway:\n  mode: rfc\n"},
		{"live without url", "gateway:\n  mode: live\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "s4spectre.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFromFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFromFileNoFile(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorageDir != ".s4spectre" {
		t.Errorf("expected default storage_dir, got %s", cfg.StorageDir)
	}
	if cfg.Gateway.Mode != "mock" {
		t.Errorf("expected default mock mode, got %s", cfg.Gateway.Mode)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	sample := GenerateSampleConfig()
	expectedFragments := []string{
		"storage_dir",
		"fail_threshold",
		"format",
		"last_runs",
		"prefixes",
		"rules_file",
		"policy_file",
		"gateway:",
		"mode: mock",
		"vsp_binary",
	}
	for _, frag := range expectedFragments {
		if !contains(sample, frag) {
			t.Errorf("expected sample config to contain %q", frag)
		}
	}

	// The sample must itself be a loadable config.
	path := filepath.Join(t.TempDir(), "s4spectre.yaml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestLoadFromFileWithEnvVars(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")

	t.Setenv("S4SPECTRE_FORMAT", "json")
	t.Setenv("S4SPECTRE_VERBOSE", "true")
	t.Setenv("S4SPECTRE_GATEWAY_MODE", "files")
	t.Setenv("S4SPECTRE_GATEWAY_ROOT", "/src")

	cfg, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("expected format=json from env, got %s", cfg.Format)
	}
	if !cfg.Verbose {
		t.Error("expected verbose=true from env")
	}
	if cfg.Gateway.Mode != "files" || cfg.Gateway.Root != "/src" {
		t.Errorf("expected gateway from env, got %+v", cfg.Gateway)
	}
}
