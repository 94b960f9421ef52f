package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/gateway"
	"github.com/spf13/viper"
)

// Config holds all configuration for s4spectre
type Config struct {
	// Storage configuration
	StorageDir string `mapstructure:"storage_dir"`

	// Minimum readiness score for CI/CD; 0 disables the check
	FailThreshold int `mapstructure:"fail_threshold"`

	// Output format (text, json, both)
	Format string `mapstructure:"format"`

	// Number of last runs to analyze
	LastRuns int `mapstructure:"last_runs"`

	Verbose bool `mapstructure:"verbose"`
	Debug   bool `mapstructure:"debug"`

	// Optional TOML rule pack appended to the builtin catalog
	RulesFile string `mapstructure:"rules_file"`

	// Optional gating policy
	PolicyFile string `mapstructure:"policy_file"`

	// Object name prefixes searched by the scanner
	Prefixes []string `mapstructure:"prefixes"`

	Gateway GatewayConfig `mapstructure:"gateway"`
}

// GatewayConfig selects and configures the source system gateway
type GatewayConfig struct {
	Mode      string        `mapstructure:"mode"`
	Fixture   string        `mapstructure:"fixture"`
	URL       string        `mapstructure:"url"`
	Client    string        `mapstructure:"client"`
	User      string        `mapstructure:"user"`
	Password  string        `mapstructure:"password"`
	Timeout   time.Duration `mapstructure:"timeout"`
	VSPBinary string        `mapstructure:"vsp_binary"`
	Root      string        `mapstructure:"root"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		StorageDir:    ".s4spectre",
		FailThreshold: 0,
		Format:        "text",
		LastRuns:      7,
		Prefixes:      []string{"Z*", "Y*"},
		Gateway: GatewayConfig{
			Mode:      string(gateway.ModeMock),
			Timeout:   gateway.DefaultTimeout,
			VSPBinary: gateway.DefaultVSPBinary,
		},
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (./s4spectre.yaml, ~/s4spectre.yaml, $XDG_CONFIG_HOME/s4spectre)
// 3. Environment variables (S4SPECTRE_*, nested keys joined with _)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path.
// If path is empty, it searches for config in standard locations.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("storage_dir", defaults.StorageDir)
	v.SetDefault("fail_threshold", defaults.FailThreshold)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("last_runs", defaults.LastRuns)
	v.SetDefault("verbose", false)
	v.SetDefault("debug", false)
	v.SetDefault("rules_file", "")
	v.SetDefault("policy_file", "")
	v.SetDefault("prefixes", defaults.Prefixes)
	v.SetDefault("gateway.mode", defaults.Gateway.Mode)
	v.SetDefault("gateway.fixture", "")
	v.SetDefault("gateway.url", "")
	v.SetDefault("gateway.client", "")
	v.SetDefault("gateway.user", "")
	v.SetDefault("gateway.password", "")
	v.SetDefault("gateway.timeout", defaults.Gateway.Timeout)
	v.SetDefault("gateway.vsp_binary", defaults.Gateway.VSPBinary)
	v.SetDefault("gateway.root", "")

	v.SetConfigName("s4spectre")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "s4spectre"))
		}
	}

	// S4SPECTRE_GATEWAY_URL -> gateway.url
	v.SetEnvPrefix("S4SPECTRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"both": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text, json, or both)", c.Format)
	}

	if c.FailThreshold < 0 {
		return fmt.Errorf("fail_threshold cannot be negative")
	}
	if c.FailThreshold > 100 {
		return fmt.Errorf("fail_threshold cannot exceed 100")
	}

	if c.LastRuns <= 0 {
		return fmt.Errorf("last_runs must be positive")
	}

	if c.StorageDir == "" {
		return fmt.Errorf("storage_dir cannot be empty")
	}

	mode := gateway.Mode(c.Gateway.Mode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid gateway.mode: %s (must be mock, live, vsp, or files)", c.Gateway.Mode)
	}
	if mode == gateway.ModeLive && c.Gateway.URL == "" {
		return fmt.Errorf("gateway.url is required in live mode")
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway.timeout cannot be negative")
	}

	return nil
}

// GatewayConfig converts the gateway section into a gateway.Config
func (c *Config) GatewayConfig() gateway.Config {
	return gateway.Config{
		Mode:      gateway.Mode(c.Gateway.Mode),
		Fixture:   c.Gateway.Fixture,
		URL:       c.Gateway.URL,
		Client:    c.Gateway.Client,
		User:      c.Gateway.User,
		Password:  c.Gateway.Password,
		Timeout:   c.Gateway.Timeout,
		VSPBinary: c.Gateway.VSPBinary,
		Root:      c.Gateway.Root,
	}
}

// GetStoragePath returns the absolute path to the storage directory
func (c *Config) GetStoragePath() (string, error) {
	if strings.HasPrefix(c.StorageDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, c.StorageDir[2:]), nil
	}

	absPath, err := filepath.Abs(c.StorageDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return absPath, nil
}

// ShouldFailOnThreshold reports whether the readiness score is below the threshold
func (c *Config) ShouldFailOnThreshold(score int) bool {
	if c.FailThreshold == 0 {
		return false
	}
	return score < c.FailThreshold
}

// ConfigPath returns the path `s4spectre init` writes to: $XDG_CONFIG_HOME/s4spectre
// when set, ./s4spectre.yaml otherwise.
func ConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "s4spectre", "s4spectre.yaml")
	}
	return "s4spectre.yaml"
}

// GenerateSampleConfig generates a sample configuration file content
func GenerateSampleConfig() string {
	return `# s4spectre configuration
# Save this file as ./s4spectre.yaml, ~/s4spectre.yaml or $XDG_CONFIG_HOME/s4spectre/s4spectre.yaml

# Directory to store assessment runs
storage_dir: .s4spectre

# Minimum readiness score for CI/CD (exit code 1 below it)
# Set to 0 to disable threshold checking
fail_threshold: 60

# Output format: text, json, or both
format: text

# Number of last runs to analyze in summarize command
last_runs: 7

verbose: false
debug: false

# Object name prefixes to scan
prefixes:
  - "Z*"
  - "Y*"

# Optional TOML rule pack appended to the builtin rules
# rules_file: ./rules.toml

# Optional gating policy
# policy_file: ./.s4spectre-policy.yaml

gateway:
  # mock, live, vsp or files
  mode: mock
  # Scan fixture used in mock mode
  fixture: ./scan.json
  # ADT endpoint used in live mode
  # url: https://erp.example.com:44300
  # client: "100"
  # user: DEVELOPER
  # password is best set via S4SPECTRE_GATEWAY_PASSWORD
  timeout: 30s
  # External CLI used in vsp mode
  vsp_binary: vsp
  # abapGit checkout used in files mode
  # root: ./src
`
}
