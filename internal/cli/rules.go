package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/reporter"
	"github.com/ppiankov/s4spectre/internal/rules"
	"github.com/spf13/cobra"
)

var (
	rulesSeverity string
	rulesCategory string
	rulesModule   string
	rulesFormat   string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the simplification rule catalog",
	Long: `List the builtin simplification rules plus the rules of the configured
rule pack (rules_file). Filters combine.

Example:
  s4spectre rules
  s4spectre rules --severity critical
  s4spectre rules --category finance
  s4spectre rules --module FIN --format json`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesSeverity, "severity", "",
		"only rules of this severity: critical, high, medium, low")
	rulesCmd.Flags().StringVar(&rulesCategory, "category", "",
		"only rules whose category contains this text (case-insensitive)")
	rulesCmd.Flags().StringVar(&rulesModule, "module", "",
		"only rules of this module (FIN, SD, MM, ...)")
	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "text",
		"output format: text or json")
}

func runRules(cmd *cobra.Command, args []string) error {
	catalog, err := buildCatalog()
	if err != nil {
		return err
	}

	selected, err := filterRules(catalog, rulesSeverity, rulesCategory, rulesModule)
	if err != nil {
		return err
	}
	logVerbose("%d of %d rules selected", len(selected), catalog.Len())

	switch rulesFormat {
	case "text":
		printRules(os.Stdout, selected)
		return nil
	case "json":
		return reporter.NewJSONReporter(os.Stdout, true).Generate(selected)
	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text or json)", rulesFormat)}
	}
}

// filterRules applies the severity, category and module filters in catalog order
func filterRules(catalog *rules.Catalog, severity, category, module string) ([]rules.Rule, error) {
	var sev models.Severity
	if severity != "" {
		sev = models.Severity(strings.ToLower(severity))
		if !sev.IsValid() {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid severity: %s (use critical, high, medium, or low)", severity)}
		}
	}

	selected := make([]rules.Rule, 0, catalog.Len())
	for _, r := range catalog.All() {
		if sev != "" && r.Severity != sev {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(r.Category), strings.ToLower(category)) {
			continue
		}
		if module != "" && !strings.EqualFold(r.Module(), module) {
			continue
		}
		selected = append(selected, r)
	}
	return selected, nil
}

func printRules(w io.Writer, selected []rules.Rule) {
	if len(selected) == 0 {
		fmt.Fprintln(w, "No rules match the given filters.")
		return
	}

	counts := models.SeverityCounts{}
	for _, r := range selected {
		counts.Add(r.Severity)
	}

	fmt.Fprintf(w, "%-16s %-9s %-24s %s\n", "RULE", "SEVERITY", "CATEGORY", "TITLE")
	for _, r := range selected {
		fmt.Fprintf(w, "%-16s %-9s %-24s %s\n", r.ID, r.Severity, truncateText(r.Category, 24), r.Title)
	}
	fmt.Fprintf(w, "\n%d rules (critical %d, high %d, medium %d, low %d)\n",
		len(selected), counts.Critical, counts.High, counts.Medium, counts.Low)
}

// truncateText shortens s to n runes with a trailing ellipsis
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
