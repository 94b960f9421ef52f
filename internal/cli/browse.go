package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/storage"
	"github.com/ppiankov/s4spectre/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var browseReport string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse findings of the latest assessment interactively",
	Long: `Open an interactive terminal view of the latest stored assessment.
Findings can be searched, filtered by category and severity, sorted and
copied to the clipboard. The header shows the readiness history of the
last runs (last_runs in the config).

Example:
  s4spectre browse
  s4spectre browse --report ./s4spectre-report.json`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseReport, "report", "",
		"browse a report file written by 'assess --format json' instead of the latest run")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &ValidationError{Message: "browse needs an interactive terminal"}
	}

	report, trend, err := loadBrowseData(browseReport)
	if err != nil {
		return err
	}

	return tui.Run(report, trend)
}

// loadBrowseData returns the report to browse and, for stored runs, the
// history over the configured number of runs.
func loadBrowseData(reportPath string) (*models.AssessmentReport, *models.TrendSummary, error) {
	if reportPath != "" {
		report, err := loadReportFromFile(reportPath)
		return report, nil, err
	}

	storagePath, err := getStoragePath()
	if err != nil {
		return nil, nil, err
	}

	reports, err := storage.NewLocal(storagePath).GetLastNRuns(cfg.LastRuns)
	if errors.Is(err, storage.ErrNoRuns) || (err == nil && len(reports) == 0) {
		return nil, nil, &ValidationError{Message: "no stored runs found, run 's4spectre assess --store' first"}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load runs: %w", err)
	}

	logVerbose("Browsing run %s", reports[len(reports)-1].Timestamp.Format("2006-01-02 15:04:05"))

	return reports[len(reports)-1], analyzer.NewTrendAnalyzer().AnalyzeLastNRuns(reports), nil
}
