package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/s4spectre/internal/reporter"
	"github.com/ppiankov/s4spectre/internal/rules"
	"github.com/ppiankov/s4spectre/internal/transform"
	"github.com/spf13/cobra"
)

var transformsFormat string

var transformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "Show automated transform coverage by module",
	Long: `Show how many rules have an automated transform, grouped by the module
segment of the rule identity (SIMPL-FIN-001 belongs to FIN).

Example:
  s4spectre transforms
  s4spectre transforms --format json`,
	RunE: runTransforms,
}

func init() {
	transformsCmd.Flags().StringVarP(&transformsFormat, "format", "f", "text",
		"output format: text or json")
}

// transformCoverage is the per-module transform count against the rule count
type transformCoverage struct {
	Module     string `json:"module"`
	Rules      int    `json:"rules"`
	Transforms int    `json:"transforms"`
}

type transformReport struct {
	Total    int                 `json:"total"`
	Rules    int                 `json:"rules"`
	ByModule []transformCoverage `json:"byModule"`
}

func runTransforms(cmd *cobra.Command, args []string) error {
	catalog, err := buildCatalog()
	if err != nil {
		return err
	}

	report := buildTransformReport(transform.Default(), catalog)

	switch transformsFormat {
	case "text":
		printTransformReport(os.Stdout, report)
		return nil
	case "json":
		return reporter.NewJSONReporter(os.Stdout, true).Generate(report)
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text or json)", transformsFormat)}
	}
}

func buildTransformReport(reg *transform.Registry, catalog *rules.Catalog) transformReport {
	stats := reg.Stats()

	rulesByModule := make(map[string]int)
	for _, r := range catalog.All() {
		rulesByModule[r.Module()]++
	}

	report := transformReport{Total: stats.Total, Rules: catalog.Len()}
	for _, module := range stats.Modules() {
		report.ByModule = append(report.ByModule, transformCoverage{
			Module:     module,
			Rules:      rulesByModule[module],
			Transforms: stats.ByModule[module],
		})
	}
	return report
}

func printTransformReport(w io.Writer, report transformReport) {
	fmt.Fprintf(w, "%-8s %10s %6s\n", "MODULE", "TRANSFORMS", "RULES")
	for _, c := range report.ByModule {
		fmt.Fprintf(w, "%-8s %10d %6d\n", c.Module, c.Transforms, c.Rules)
	}
	fmt.Fprintf(w, "\n%d transforms for %d rules\n", report.Total, report.Rules)
}
