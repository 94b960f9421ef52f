package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/remediator"
	"github.com/ppiankov/s4spectre/internal/reporter"
	"github.com/ppiankov/s4spectre/internal/scanner"
	"github.com/ppiankov/s4spectre/internal/transform"
	"github.com/spf13/cobra"
)

var (
	remediateFixture     string
	remediateRoot        string
	remediateDryRun      bool
	remediateShowDiff    bool
	remediateFormat      string
	remediateOutput      string
	remediateIncludeScan bool
	remediateNoProgress  bool
)

var remediateCmd = &cobra.Command{
	Use:   "remediate",
	Short: "Apply automated transforms to the custom code",
	Long: `Scan and analyze the custom objects, then run every automated transform
that matches a finding. Transforms for one object are chained in finding order
and produce a single unified diff per object.

Findings end up as:
  fixed          the transform changed the source
  manual-review  the construct was flagged or the transform changed nothing
  skipped        no automated transform or no source
  error          the transform or the write back failed

Sources are written back through the gateway unless --dry-run is set.
Mock mode never writes to a real system.

Example:
  s4spectre remediate --dry-run --diff
  s4spectre remediate --root ./src
  s4spectre remediate --format json -o remediation.json`,
	RunE: runRemediate,
}

func init() {
	remediateCmd.Flags().StringVar(&remediateFixture, "fixture", "",
		"scan fixture for mock mode (default from config)")
	remediateCmd.Flags().StringVar(&remediateRoot, "root", "",
		"abapGit checkout for files mode (default from config)")
	remediateCmd.Flags().BoolVar(&remediateDryRun, "dry-run", false,
		"compute changes without writing sources back")
	remediateCmd.Flags().BoolVar(&remediateShowDiff, "diff", false,
		"print the unified diff of every changed object")
	remediateCmd.Flags().StringVarP(&remediateFormat, "format", "f", "text",
		"output format: text or json")
	remediateCmd.Flags().StringVarP(&remediateOutput, "output", "o", "",
		"output file path (default: stdout)")
	remediateCmd.Flags().BoolVar(&remediateIncludeScan, "include-scan", false,
		"include the scan result in JSON output")
	remediateCmd.Flags().BoolVar(&remediateNoProgress, "no-progress", false,
		"disable the scan progress bar")
}

func runRemediate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := RunRemediation(ctx, remediateFixture, remediateRoot, remediateDryRun, !remediateNoProgress)
	if err != nil {
		logError("Remediation failed: %v", err)
		return err
	}

	var writer io.Writer = os.Stdout
	if remediateOutput != "" {
		f, err := os.Create(remediateOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	if err := writeRemediation(writer, result, remediateFormat, remediateShowDiff, remediateIncludeScan); err != nil {
		return err
	}

	if len(result.WriteErrors) > 0 {
		return fmt.Errorf("%d object(s) could not be written back", len(result.WriteErrors))
	}
	return nil
}

// RunRemediation builds the gateway, scanner and analyzer and runs one remediation pass
func RunRemediation(ctx context.Context, fixture, root string, dryRun, progress bool) (*models.RemediationResult, error) {
	catalog, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	gw, err := buildGateway(fixture, root)
	if err != nil {
		return nil, err
	}

	if !dryRun && !gw.Mode().SupportsWrites() {
		logVerbose("Gateway mode %s does not write sources back", gw.Mode())
	}

	sc := scanner.New(gw,
		scanner.WithLogger(slog.Default()),
		scanner.WithProgress(scanner.NewProgress(progress)),
		scanner.WithPrefixes(cfg.Prefixes...),
	)
	rem := remediator.New(sc, analyzer.New(catalog), transform.Default(), gw,
		remediator.WithDryRun(dryRun),
		remediator.WithLogger(slog.Default()),
	)

	result := rem.Run(ctx)
	logVerbose("Remediated %d findings: %d fixed, %d manual review, %d without transform, %d errors",
		result.Stats.TotalFindings, result.Stats.AutoFixed, result.Stats.ManualReview,
		result.Stats.NoTransform, result.Stats.Errors)
	return result, nil
}

func writeRemediation(w io.Writer, result *models.RemediationResult, format string, showDiff, includeScan bool) error {
	switch format {
	case "text":
		r := reporter.NewTextReporter(w)
		r.SetShowDiffs(showDiff)
		return r.GenerateRemediation(result)
	case "json":
		return reporter.NewJSONReporter(w, true).GenerateRemediation(result, includeScan)
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text or json)", format)}
	}
}
