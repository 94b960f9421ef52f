// Package remediator applies the automated transforms to the findings of a scan
// and optionally writes the rewritten sources back.
package remediator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/gateway"
	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/transform"
)

// Scanner produces the scan the remediator works on
type Scanner interface {
	Scan(ctx context.Context) *models.ScanResult
}

// Remediator drives scan, analysis and transforms for every object
type Remediator struct {
	scanner  Scanner
	analyzer *analyzer.Analyzer
	registry *transform.Registry
	gw       gateway.Gateway
	dryRun   bool
	logger   *slog.Logger
}

// Option configures a Remediator
type Option func(*Remediator)

// WithDryRun disables writes back to the gateway
func WithDryRun(dryRun bool) Option {
	return func(r *Remediator) { r.dryRun = dryRun }
}

// WithLogger sets the logger used for write failures
func WithLogger(l *slog.Logger) Option {
	return func(r *Remediator) { r.logger = l }
}

// New creates a remediator. A nil analyzer or registry selects the defaults;
// a nil gateway disables writes.
func New(sc Scanner, an *analyzer.Analyzer, reg *transform.Registry, gw gateway.Gateway, opts ...Option) *Remediator {
	if an == nil {
		an = analyzer.New(nil)
	}
	if reg == nil {
		reg = transform.Default()
	}
	r := &Remediator{
		scanner:  sc,
		analyzer: an,
		registry: reg,
		gw:       gw,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scans, analyzes and remediates
func (r *Remediator) Run(ctx context.Context) *models.RemediationResult {
	return r.Remediate(ctx, r.scanner.Scan(ctx))
}

// Remediate analyzes scan and applies transforms to every finding.
// Failures stay local to their finding or object; the result is always complete.
func (r *Remediator) Remediate(ctx context.Context, scan *models.ScanResult) *models.RemediationResult {
	if scan == nil {
		scan = models.NewScanResult()
	}
	analysis := r.analyzer.Analyze(scan)

	result := &models.RemediationResult{
		Remediations: []models.Remediation{},
		ScanResult:   scan,
		Analysis:     analysis,
		DryRun:       r.dryRun,
	}

	order, groups := models.GroupFindingsByObject(analysis.Findings)
	for _, name := range order {
		findings := groups[name]
		bundle, ok := scan.Sources[name]
		if !ok {
			for _, f := range findings {
				rem := newRemediation(f, models.StatusSkipped)
				rem.Reason = models.ReasonNoSource
				result.Remediations = append(result.Remediations, rem)
			}
			continue
		}

		start := len(result.Remediations)
		current := r.remediateObject(findings, bundle.Source, result)
		if current == bundle.Source {
			continue
		}

		diff := UnifiedDiff(name, bundle.Source, current)
		objRems := result.Remediations[start:]
		for i := range objRems {
			if objRems[i].Status == models.StatusFixed {
				objRems[i].Diff = diff
			}
		}
		r.write(ctx, findings[0].Object, bundle, current, objRems, result)
	}

	result.Stats = calculateStats(result.Remediations)
	return result
}

// remediateObject runs the transforms of one object's findings in order and
// returns the accumulated source
func (r *Remediator) remediateObject(findings []models.Finding, source string, result *models.RemediationResult) string {
	current := source
	for _, f := range findings {
		t, err := r.registry.Get(f.RuleID)
		if err != nil {
			rem := newRemediation(f, models.StatusManualReview)
			rem.Reason = models.ReasonNoTransform
			result.Remediations = append(result.Remediations, rem)
			continue
		}

		out, err := applyTransform(t, current, f)
		if err != nil {
			rem := newRemediation(f, models.StatusError)
			rem.Reason = err.Error()
			result.Remediations = append(result.Remediations, rem)
			continue
		}

		if len(out.Changes) > 0 && out.Changed(current) {
			rem := newRemediation(f, models.StatusFixed)
			rem.Changes = out.Changes
			rem.ChangeCount = len(out.Changes)
			result.Remediations = append(result.Remediations, rem)
			current = out.Source
			continue
		}

		rem := newRemediation(f, models.StatusManualReview)
		rem.Reason = models.ReasonNoChanges
		rem.Changes = out.Changes
		rem.ChangeCount = len(out.Changes)
		result.Remediations = append(result.Remediations, rem)
	}
	return current
}

// applyTransform calls t and turns a panic into an error
func applyTransform(t transform.Transform, source string, f models.Finding) (out transform.Output, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = transform.Output{Source: source}
			err = fmt.Errorf("transform %s panicked: %v", t.RuleID(), p)
		}
	}()
	return t.Apply(source, f)
}

// write sends the rewritten source to the gateway. A failure turns the
// object's fixed remediations into errors and is reported in WriteErrors.
func (r *Remediator) write(ctx context.Context, obj models.ObjectRef, bundle models.SourceBundle, source string, rems []models.Remediation, result *models.RemediationResult) {
	if r.dryRun || r.gw == nil || !r.gw.Mode().SupportsWrites() {
		return
	}

	objectType := bundle.Type
	if objectType == "" {
		objectType = obj.Type
	}
	_, err := r.gw.WriteSource(ctx, gateway.WriteRequest{
		ObjectName: obj.Name,
		ObjectType: objectType,
		Package:    obj.Package,
		Source:     source,
	})
	if err == nil {
		result.Written = append(result.Written, obj.Name)
		return
	}

	r.logger.Warn("failed to write remediated source", "object", obj.Name, "error", err)
	result.WriteErrors = append(result.WriteErrors, models.WriteError{Object: obj.Name, Message: err.Error()})
	for i := range rems {
		if rems[i].Status == models.StatusFixed {
			rems[i].Status = models.StatusError
			rems[i].Reason = fmt.Sprintf("%s: %v", models.ReasonWriteFailure, err)
		}
	}
}

func newRemediation(f models.Finding, status models.RemediationStatus) models.Remediation {
	return models.Remediation{
		Object:      f.Object.Name,
		ObjectType:  f.ObjectType,
		RuleID:      f.RuleID,
		Title:       f.Title,
		Severity:    f.Severity,
		Category:    f.Category,
		Status:      status,
		Matches:     f.Matches,
		Remediation: f.Remediation,
	}
}

// calculateStats counts outcomes. Skipped findings and findings without a
// transform count as noTransform; demoted transforms count as manualReview.
func calculateStats(rems []models.Remediation) models.RemediationStats {
	stats := models.RemediationStats{TotalFindings: len(rems)}
	for _, rem := range rems {
		switch rem.Status {
		case models.StatusFixed:
			stats.AutoFixed++
		case models.StatusError:
			stats.Errors++
		case models.StatusSkipped:
			stats.NoTransform++
		default:
			if rem.Reason == models.ReasonNoTransform {
				stats.NoTransform++
			} else {
				stats.ManualReview++
			}
		}
	}
	return stats
}
