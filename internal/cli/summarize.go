package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/reporter"
	"github.com/ppiankov/s4spectre/internal/storage"
	"github.com/spf13/cobra"
)

var (
	summarizeLastN   int
	summarizeCompare bool
	summarizeFormat  string
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Show readiness history from stored runs",
	Long: `Analyze stored assessment runs and show how readiness changed over time.

This command displays:
- Latest run headline and change against the run before it
- Readiness score and finding sparklines
- Per-category finding trends
- Top roadmap items of the latest run

Example:
  s4spectre summarize
  s4spectre summarize --last 7
  s4spectre summarize --compare
  s4spectre summarize --format json`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().IntVarP(&summarizeLastN, "last", "n", 0,
		"number of runs to analyze (default from config)")
	summarizeCmd.Flags().BoolVarP(&summarizeCompare, "compare", "c", false,
		"compare latest run with previous")
	summarizeCmd.Flags().StringVarP(&summarizeFormat, "format", "f", "text",
		"output format: text or json")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	lastN := summarizeLastN
	if lastN <= 0 {
		lastN = cfg.LastRuns
	}

	storagePath, err := getStoragePath()
	if err != nil {
		logError("Failed to get storage path: %v", err)
		return err
	}

	store := storage.NewLocal(storagePath)
	logVerbose("Loading runs from: %s", storagePath)

	runs, err := store.ListRuns()
	if err != nil {
		logError("Failed to list runs: %v", err)
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No stored runs found.")
		fmt.Println("Run 's4spectre assess --store' to record your first assessment.")
		return nil
	}

	logVerbose("Found %d stored runs", len(runs))

	if summarizeCompare {
		return runComparisonReport(os.Stdout, store)
	}
	return runTrendReport(os.Stdout, store, lastN, summarizeFormat)
}

// runComparisonReport compares the latest run with the one before it
func runComparisonReport(w io.Writer, store *storage.LocalStorage) error {
	reports, err := store.GetLastNRuns(2)
	if err != nil {
		logError("Failed to load runs: %v", err)
		return err
	}

	if len(reports) < 2 {
		fmt.Fprintln(w, "Need at least 2 runs for comparison.")
		fmt.Fprintln(w, "Run 's4spectre assess --store' again to record another assessment.")
		return nil
	}

	previous := reports[0]
	current := reports[1]

	logVerbose("Comparing %s vs %s", current.Timestamp, previous.Timestamp)

	fmt.Fprint(w, analyzer.NewTrendAnalyzer().GenerateComparisonReport(current, previous))
	return nil
}

// runTrendReport renders the history over the last N runs
func runTrendReport(w io.Writer, store *storage.LocalStorage, lastN int, format string) error {
	reports, err := store.GetLastNRuns(lastN)
	if err != nil {
		logError("Failed to load runs: %v", err)
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(w, "No readable runs found.")
		return nil
	}

	logVerbose("Analyzing trends across %d runs", len(reports))

	summary := analyzer.NewTrendAnalyzer().AnalyzeLastNRuns(reports)

	switch format {
	case "text":
		return printTrendSummaryText(w, summary, reports)
	case "json":
		return reporter.NewJSONReporter(w, true).GenerateTrendSummary(summary)
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text or json)", format)}
	}
}

// printTrendSummaryText prints the latest headline followed by the history view
func printTrendSummaryText(w io.Writer, summary *models.TrendSummary, reports []*models.AssessmentReport) error {
	latest := reports[len(reports)-1]
	s := latest.Analysis.Summary

	fmt.Fprintf(w, "Latest Run: %s (%s mode)\n", latest.Timestamp.Format("2006-01-02 15:04:05"), latest.Mode)
	fmt.Fprintf(w, "Readiness: %d/100 (%s)", s.ReadinessScore, s.ReadinessGrade)

	if len(reports) >= 2 {
		trend := analyzer.NewTrendAnalyzer().CalculateTrend(latest, reports[len(reports)-2])
		if trend != nil {
			fmt.Fprintf(w, " %s %+d since previous run", analyzer.GetTrendIndicator(trend.Direction), trend.ScoreDelta)
		}
	}
	fmt.Fprintf(w, "\nFindings: %d across %d objects\n\n", s.TotalFindings, s.TotalObjects)

	if err := reporter.NewTextReporter(w).GenerateTrendSummary(summary); err != nil {
		return err
	}

	items := topRoadmapItems(latest.Roadmap, 5)
	if len(items) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top Roadmap Items:")
		fmt.Fprintln(w, "--------------------------------------------------")
		for i, item := range items {
			fmt.Fprintf(w, "  %d. [%s] %s: %s (%d findings)\n", i+1, item.Severity, item.Category, item.Action, item.Findings)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 's4spectre assess --store' to update data")
	return nil
}

// topRoadmapItems returns the first n items in roadmap phase order
func topRoadmapItems(phases []models.RoadmapPhase, n int) []models.RoadmapItem {
	var items []models.RoadmapItem
	for _, phase := range phases {
		for _, item := range phase.Items {
			if len(items) == n {
				return items
			}
			items = append(items, item)
		}
	}
	return items
}
