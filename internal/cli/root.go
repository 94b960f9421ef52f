package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ppiankov/s4spectre/internal/config"
	"github.com/spf13/cobra"
)

const (
	ExitOK           = 0 // Success
	ExitPolicyFail   = 1 // Score below threshold or policy violation
	ExitInvalidInput = 2 // Fixture, dataset, rule pack or config error
	ExitRuntimeError = 3 // I/O, gateway or runtime error
)

// buildVersion is set from main via SetVersion
var buildVersion = "dev"

var (
	// Global config instance
	cfg *config.Config

	// Global flags
	configFile string
	verbose    bool
	debug      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "s4spectre",
	Short: "s4spectre - S/4HANA readiness assessment and code remediation",
	Long: `s4spectre scans the custom ABAP development of an SAP ECC system, checks it
against a catalog of simplification rules and reports how ready it is for S/4HANA.

It provides:
- Readiness score, grade, effort estimate and risk matrix
- Remediation roadmap grouped by severity
- Automated rewrites for mechanical fixes, with unified diffs
- Trend tracking across stored assessments
- CI/CD gating with exit codes and policy files

Quick start:
  s4spectre init
  s4spectre assess --fixture ./scan.json --store
  s4spectre browse

Other commands:
  s4spectre remediate --dry-run --diff
  s4spectre rules --severity critical
  s4spectre summarize --compare
  s4spectre diff --fail-new
  s4spectre export --format sarif`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return &ValidationError{Message: fmt.Sprintf("failed to load config: %v", err)}
		}

		// Override config with flags if provided
		if verbose {
			cfg.Verbose = true
		}
		if debug {
			cfg.Debug = true
		}

		slog.SetDefault(newLogger(os.Stderr, cfg))
		return nil
	},
}

// Execute runs the root command and exits with the code matching the error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		os.Exit(HandleError(err))
	}
}

// SetVersion records the version reported by the version command
func SetVersion(v string) {
	buildVersion = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./s4spectre.yaml or ~/s4spectre.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"debug mode (very verbose)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(remediateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(transformsCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(explainScoreCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("s4spectre %s\n", buildVersion)
		fmt.Println("S/4HANA readiness assessment and code remediation")
	},
}

// newLogger returns the slog logger used by the library packages.
// Warnings only by default; --verbose adds info, --debug adds debug.
func newLogger(w io.Writer, c *config.Config) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case c != nil && c.Debug:
		level = slog.LevelDebug
	case c != nil && c.Verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// HandleError determines the appropriate exit code for an error
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}

	var validationErr *ValidationError
	var thresholdErr *ThresholdExceededError
	var policyErr *PolicyViolationError
	switch {
	case errors.As(err, &validationErr):
		return ExitInvalidInput
	case errors.As(err, &thresholdErr), errors.As(err, &policyErr):
		return ExitPolicyFail
	default:
		return ExitRuntimeError
	}
}

// ValidationError represents invalid user input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ThresholdExceededError reports a readiness score below the configured minimum
type ThresholdExceededError struct {
	Score     int
	Threshold int
}

func (e *ThresholdExceededError) Error() string {
	return fmt.Sprintf("readiness score (%d) below threshold (%d)", e.Score, e.Threshold)
}

// PolicyViolationError reports a failed policy or CI gate
type PolicyViolationError struct {
	Violations int
	Reason     string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s (%d violation(s))", e.Reason, e.Violations)
}

// logVerbose prints a message if verbose mode is enabled
func logVerbose(format string, args ...interface{}) {
	if cfg != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", args...)
	}
}

// logDebug prints a message if debug mode is enabled
func logDebug(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// logError prints an error message
func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", args...)
}

// getStoragePath resolves the configured storage directory
func getStoragePath() (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("configuration not loaded")
	}
	return cfg.GetStoragePath()
}
