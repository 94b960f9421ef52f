package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ppiankov/s4spectre/internal/watch"
	"github.com/spf13/cobra"
)

var (
	// Assess command flags
	assessFixture    string
	assessRoot       string
	assessDatasets   string
	assessInterfaces string
	assessATC        string
	assessUsage      string
	assessPolicy     string
	assessFormat     string
	assessOutput     string
	assessStore      bool
	assessThreshold  int
	assessNoProgress bool
	assessWatch      bool
)

// assessCmd runs a readiness assessment
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess S/4HANA readiness of the custom code",
	Long: `Scan the custom objects through the configured gateway, check them against
the simplification rule catalog and report readiness.

The command will:
1. Scan objects in the configured name prefixes (default Z*, Y*)
2. Evaluate every source and object-name rule
3. Score readiness, estimate effort and build the risk matrix
4. Apply optional interface, ATC and usage datasets
5. Build a remediation roadmap
6. Compare with the previous stored run and store this one (--store)
7. Check the policy file and the score threshold

Example:
  s4spectre assess --fixture ./scan.json
  s4spectre assess --datasets ./sidecar --store
  s4spectre assess --atc ./atc.json --fail-threshold 60 --format json
  s4spectre assess --fixture ./scan.json --watch`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVar(&assessFixture, "fixture", "",
		"scan fixture for mock mode (default from config)")
	assessCmd.Flags().StringVar(&assessRoot, "root", "",
		"abapGit checkout for files mode (default from config)")
	assessCmd.Flags().StringVar(&assessDatasets, "datasets", "",
		"directory of interface, ATC and usage datasets")
	assessCmd.Flags().StringVar(&assessInterfaces, "interfaces", "",
		"interface inventory (JSON or YAML)")
	assessCmd.Flags().StringVar(&assessATC, "atc", "",
		"ATC results (JSON or YAML)")
	assessCmd.Flags().StringVar(&assessUsage, "usage", "",
		"usage statistics (JSON or YAML)")
	assessCmd.Flags().StringVar(&assessPolicy, "policy", "",
		"policy file (default: config or nearest .s4spectre-policy.yaml)")
	assessCmd.Flags().StringVarP(&assessFormat, "format", "f", "",
		"output format: text, json, or both (default from config)")
	assessCmd.Flags().StringVarP(&assessOutput, "output", "o", "",
		"output file path (default: stdout)")
	assessCmd.Flags().BoolVar(&assessStore, "store", false,
		"store the assessment for trend analysis")
	assessCmd.Flags().IntVar(&assessThreshold, "fail-threshold", -1,
		"exit with code 1 if the readiness score is below this value (default from config)")
	assessCmd.Flags().BoolVar(&assessNoProgress, "no-progress", false,
		"disable the scan progress bar")
	assessCmd.Flags().BoolVarP(&assessWatch, "watch", "w", false,
		"re-run the assessment when inputs change")
}

// assessPipelineConfig merges flags with config defaults
func assessPipelineConfig() PipelineConfig {
	format := assessFormat
	if format == "" {
		format = cfg.Format
	}
	threshold := assessThreshold
	if threshold == -1 {
		threshold = cfg.FailThreshold
	}

	return PipelineConfig{
		Fixture:     assessFixture,
		Root:        assessRoot,
		DatasetsDir: assessDatasets,
		Interfaces:  assessInterfaces,
		ATC:         assessATC,
		Usage:       assessUsage,
		PolicyFile:  assessPolicy,
		Format:      format,
		Output:      assessOutput,
		Store:       assessStore,
		Threshold:   threshold,
		Progress:    !assessNoProgress && !assessWatch,
	}
}

func runAssess(cmd *cobra.Command, args []string) error {
	pcfg := assessPipelineConfig()
	logDebug("Config: mode=%s, format=%s, store=%v, threshold=%d",
		cfg.Gateway.Mode, pcfg.Format, pcfg.Store, pcfg.Threshold)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !assessWatch {
		_, err := RunPipeline(ctx, pcfg)
		return err
	}
	return watchAssessments(ctx, pcfg)
}

// watchAssessments runs the pipeline once, then again after every input change.
// Gate failures are reported but do not stop the loop.
func watchAssessments(ctx context.Context, pcfg PipelineConfig) error {
	paths := watchPaths(pcfg)
	w, err := watch.New(paths)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("cannot watch inputs: %v", err)}
	}

	runOnce := func() {
		_, err := RunPipeline(ctx, pcfg)
		var gate *ThresholdExceededError
		var pol *PolicyViolationError
		switch {
		case err == nil:
		case errors.As(err, &gate), errors.As(err, &pol):
			fmt.Fprintf(os.Stderr, "Gate failed: %v\n", err)
		default:
			logError("%v", err)
		}
		fmt.Fprintf(os.Stderr, "\nWatching %s for changes... (Press Ctrl+C to exit)\n", strings.Join(paths, ", "))
	}

	runOnce()
	err = w.Run(ctx, func(_ context.Context, changed []string) {
		logVerbose("Changed: %s", strings.Join(changed, ", "))
		runOnce()
	})
	fmt.Fprintln(os.Stderr, "Stopped watching.")
	return err
}

// watchPaths lists the assessment inputs that exist on disk
func watchPaths(pcfg PipelineConfig) []string {
	fixture := pcfg.Fixture
	if fixture == "" {
		fixture = cfg.Gateway.Fixture
	}
	root := pcfg.Root
	if root == "" {
		root = cfg.Gateway.Root
	}

	policyFile := pcfg.PolicyFile
	if policyFile == "" {
		policyFile = cfg.PolicyFile
	}

	candidates := []string{
		fixture, root,
		pcfg.DatasetsDir, pcfg.Interfaces, pcfg.ATC, pcfg.Usage,
		cfg.RulesFile, policyFile,
	}

	var paths []string
	seen := make(map[string]bool)
	for _, p := range candidates {
		if p == "" || seen[p] {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}
