package analyzer

import (
	"fmt"
	"sort"

	"github.com/ppiankov/s4spectre/internal/models"
)

// Enrichment holds the optional datasets used to refine an analysis
type Enrichment struct {
	Interfaces *models.InterfaceInventory
	ATC        *models.ATCResult
	Usage      *models.UsageData
}

// interfacePenalty is the score deduction per interface complexity level
var interfacePenalty = map[string]int{
	models.EffortVeryHigh: 10,
	models.EffortHigh:     5,
	models.EffortMedium:   2,
	models.EffortLow:      0,
}

const (
	atcPenaltyPerFinding = 2
	atcPenaltyCap        = 15
)

// Enrich applies interface, ATC and usage data in that order.
// Nil datasets are skipped and leave the score untouched.
func Enrich(analysis *models.Analysis, e Enrichment) {
	EnrichInterfaces(analysis, e.Interfaces)
	EnrichATC(analysis, e.ATC)
	EnrichUsage(analysis, e.Usage)
}

// EnrichInterfaces deducts the interface complexity penalty and attaches the interface summary
func EnrichInterfaces(analysis *models.Analysis, inv *models.InterfaceInventory) {
	if analysis == nil || inv == nil {
		return
	}

	summary := &models.InterfaceSummary{
		Total:      len(inv.Interfaces),
		Complexity: inv.EffectiveComplexity(),
		ByKind:     make(map[string]int),
	}
	for _, i := range inv.Interfaces {
		kind := i.Kind
		if kind == "" {
			kind = "unknown"
		}
		summary.ByKind[kind]++
		if i.Deprecated {
			summary.Deprecated++
		}
	}
	summary.Penalty = interfacePenalty[summary.Complexity]
	analysis.InterfaceSummary = summary

	applyPenalty(analysis, "interfaces", summary.Penalty,
		fmt.Sprintf("%s interface complexity (%d interfaces)", summary.Complexity, summary.Total))
}

// EnrichATC deducts two points per priority-1 ATC finding, capped at 15
func EnrichATC(analysis *models.Analysis, atc *models.ATCResult) {
	if analysis == nil || atc == nil {
		return
	}

	summary := &models.ATCSummary{
		Total:      len(atc.Findings),
		ByPriority: make(map[int]int),
	}
	for _, f := range atc.Findings {
		summary.ByPriority[f.Priority]++
	}
	summary.Penalty = min(atcPenaltyPerFinding*summary.ByPriority[1], atcPenaltyCap)
	analysis.ATCSummary = summary

	applyPenalty(analysis, "atc", summary.Penalty,
		fmt.Sprintf("%d priority-1 ATC finding(s)", summary.ByPriority[1]))
}

// EnrichUsage attaches usage statistics; the score is not changed
func EnrichUsage(analysis *models.Analysis, usage *models.UsageData) {
	if analysis == nil || usage == nil {
		return
	}

	summary := &models.UsageSummary{Total: len(usage.Entries)}
	for _, e := range usage.Entries {
		if e.Executions > 0 {
			summary.Used++
			continue
		}
		summary.Unused++
		summary.UnusedObject = append(summary.UnusedObject, e.Object)
	}
	sort.Strings(summary.UnusedObject)
	analysis.UsageSummary = summary
}

// applyPenalty lowers the score, recomputes the grade and records the adjustment
func applyPenalty(analysis *models.Analysis, source string, penalty int, reason string) {
	if penalty > 0 {
		analysis.Summary.ReadinessScore = max(0, analysis.Summary.ReadinessScore-penalty)
		analysis.Adjustments = append(analysis.Adjustments, models.ScoreAdjustment{
			Source:  source,
			Penalty: penalty,
			Reason:  reason,
		})
	}
	analysis.Summary.ReadinessGrade = models.GradeForScore(analysis.Summary.ReadinessScore)
}
