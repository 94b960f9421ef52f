// Package analyzer scores a scan against the rule catalog.
package analyzer

import (
	"sort"

	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/rules"
)

// Analyzer checks scan results against a rule catalog
type Analyzer struct {
	catalog *rules.Catalog
}

// New creates an analyzer. A nil catalog selects rules.Default().
func New(catalog *rules.Catalog) *Analyzer {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &Analyzer{catalog: catalog}
}

// Catalog returns the rule catalog in use
func (a *Analyzer) Catalog() *rules.Catalog {
	return a.catalog
}

// Analyze evaluates every object of scan. Objects without source are still
// checked so that object-name rules fire.
func (a *Analyzer) Analyze(scan *models.ScanResult) *models.Analysis {
	if scan == nil {
		scan = models.NewScanResult()
	}

	analysis := &models.Analysis{
		CategoryCounts: make(map[string]int),
		Findings:       []models.Finding{},
		ObjectSummary:  []models.ObjectSummary{},
		RiskMatrix:     models.NewRiskMatrix(),
		RulesChecked:   a.catalog.Len(),
	}

	objects := universe(scan)
	for _, obj := range objects {
		bundle, hasSource := scan.Sources[obj.Name]
		objectType := obj.Type
		if hasSource && bundle.Type != "" {
			objectType = bundle.Type
		}

		for _, f := range a.catalog.CheckSource(bundle.Source, obj.Name) {
			f.Object = obj
			f.ObjectType = objectType
			analysis.Findings = append(analysis.Findings, f)
		}
	}
	models.SortFindings(analysis.Findings)

	a.calculateSummary(analysis, scan, objects)
	return analysis
}

// universe returns the listed objects followed by any object that only has a
// source bundle, sorted by name
func universe(scan *models.ScanResult) []models.ObjectRef {
	objects := make([]models.ObjectRef, 0, len(scan.Objects))
	listed := make(map[string]bool, len(scan.Objects))
	for _, obj := range scan.Objects {
		if listed[obj.Name] {
			continue
		}
		listed[obj.Name] = true
		objects = append(objects, obj)
	}

	var extra []string
	for name := range scan.Sources {
		if !listed[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		objects = append(objects, models.ObjectRef{Name: name, Type: scan.Sources[name].Type})
	}
	return objects
}

// calculateSummary fills counts, per-object summaries, the risk matrix and the score
func (a *Analyzer) calculateSummary(analysis *models.Analysis, scan *models.ScanResult, objects []models.ObjectRef) {
	perObject := make(map[string]int)
	worst := make(map[string]models.Severity)
	totalPenalty := 0

	for _, f := range analysis.Findings {
		analysis.SeverityCounts.Add(f.Severity)
		analysis.CategoryCounts[f.Category]++
		totalPenalty += models.SeverityWeight(f.Severity)

		perObject[f.Object.Name]++
		if prev, ok := worst[f.Object.Name]; ok {
			worst[f.Object.Name] = models.MaxSeverity(prev, f.Severity)
		} else {
			worst[f.Object.Name] = f.Severity
		}
	}

	for _, obj := range objects {
		maxSev := models.SeverityNone
		if s, ok := worst[obj.Name]; ok {
			maxSev = s
		}
		analysis.ObjectSummary = append(analysis.ObjectSummary, models.ObjectSummary{
			Name:         obj.Name,
			Type:         obj.Type,
			Package:      obj.Package,
			Lines:        scan.Sources[obj.Name].Lines,
			FindingCount: perObject[obj.Name],
			MaxSeverity:  maxSev,
		})
	}
	sort.SliceStable(analysis.ObjectSummary, func(i, j int) bool {
		return analysis.ObjectSummary[i].MaxSeverity.Rank() < analysis.ObjectSummary[j].MaxSeverity.Rank()
	})

	refs := make(map[string]models.ObjectRef, len(objects))
	for _, obj := range objects {
		refs[obj.Name] = obj
	}
	for _, s := range analysis.ObjectSummary {
		analysis.RiskMatrix.Place(s.MaxSeverity, models.RiskEntry{
			Object:       refs[s.Name],
			FindingCount: s.FindingCount,
		})
	}

	score := models.CalculateReadinessScore(totalPenalty, len(objects))
	analysis.Summary = models.ReadinessSummary{
		TotalObjects:   len(objects),
		ObjectsScanned: len(scan.Sources),
		TotalFindings:  len(analysis.Findings),
		ReadinessScore: score,
		ReadinessGrade: models.GradeForScore(score),
		EffortEstimate: models.EstimateEffort(analysis.SeverityCounts.AsMap()),
	}
}
