package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/s4spectre/internal/analyzer"
	"github.com/ppiankov/s4spectre/internal/collector"
	"github.com/ppiankov/s4spectre/internal/gateway"
	"github.com/ppiankov/s4spectre/internal/models"
	"github.com/ppiankov/s4spectre/internal/policy"
	"github.com/ppiankov/s4spectre/internal/reporter"
	"github.com/ppiankov/s4spectre/internal/rules"
	"github.com/ppiankov/s4spectre/internal/scanner"
	"github.com/ppiankov/s4spectre/internal/storage"
)

// bothJSONFile receives the JSON half of --format both when writing to stdout
const bothJSONFile = "s4spectre-report.json"

// PipelineConfig holds the inputs of one assessment run
type PipelineConfig struct {
	// Scan inputs; empty values fall back to the config file
	Fixture string
	Root    string

	// Sidecar datasets
	DatasetsDir string
	Interfaces  string
	ATC         string
	Usage       string

	PolicyFile string
	Format     string
	Output     string
	Store      bool
	Threshold  int
	Progress   bool
}

// buildCatalog returns the builtin catalog, extended with the configured rule pack
func buildCatalog() (*rules.Catalog, error) {
	catalog := rules.Default()
	if cfg.RulesFile == "" {
		return catalog, nil
	}

	extended, err := rules.WithPack(catalog, cfg.RulesFile)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid rule pack %s: %v", cfg.RulesFile, err)}
	}
	logVerbose("Loaded rule pack %s (%d rules total)", cfg.RulesFile, extended.Len())
	return extended, nil
}

// buildGateway creates the configured gateway, applying command-line overrides
func buildGateway(fixture, root string) (gateway.Gateway, error) {
	gcfg := cfg.GatewayConfig()
	if fixture != "" {
		gcfg.Fixture = fixture
	}
	if root != "" {
		gcfg.Root = root
	}

	gw, err := gateway.New(gcfg)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	logDebug("Gateway mode: %s", gw.Mode())
	return gw, nil
}

// loadEnrichment collects sidecar datasets. Explicit files win over the
// datasets of the same kind found in DatasetsDir.
func loadEnrichment(ctx context.Context, pcfg PipelineConfig) (analyzer.Enrichment, error) {
	c := collector.New(collector.Config{Logger: slog.Default()})

	var enrichment analyzer.Enrichment
	if pcfg.DatasetsDir != "" {
		var err error
		enrichment, err = c.CollectFromDirectory(ctx, pcfg.DatasetsDir)
		if err != nil {
			return enrichment, &ValidationError{Message: fmt.Sprintf("failed to collect datasets: %v", err)}
		}
	}

	explicit := []struct {
		path string
		kind collector.DatasetKind
	}{
		{pcfg.Interfaces, collector.KindInterfaces},
		{pcfg.ATC, collector.KindATC},
		{pcfg.Usage, collector.KindUsage},
	}
	for _, e := range explicit {
		if e.path == "" {
			continue
		}
		ds, err := c.LoadExpected(e.path, e.kind)
		if err != nil {
			return enrichment, &ValidationError{Message: err.Error()}
		}
		logVerbose("Loaded %s dataset from %s", ds.Kind, ds.Path)
		switch v := ds.Value.(type) {
		case *models.InterfaceInventory:
			enrichment.Interfaces = v
		case *models.ATCResult:
			enrichment.ATC = v
		case *models.UsageData:
			enrichment.Usage = v
		}
	}

	return enrichment, nil
}

// RunAssessment scans, analyzes, enriches and builds the roadmap
func RunAssessment(ctx context.Context, pcfg PipelineConfig) (*models.AssessmentReport, error) {
	catalog, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	gw, err := buildGateway(pcfg.Fixture, pcfg.Root)
	if err != nil {
		return nil, err
	}

	enrichment, err := loadEnrichment(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	sc := scanner.New(gw,
		scanner.WithLogger(slog.Default()),
		scanner.WithProgress(scanner.NewProgress(pcfg.Progress)),
		scanner.WithPrefixes(cfg.Prefixes...),
	)
	scan := sc.Scan(ctx)
	if len(scan.Objects) == 0 && scan.Stats.Errors > 0 {
		return nil, fmt.Errorf("scan failed: no objects read (%d errors)", scan.Stats.Errors)
	}
	logVerbose("Scanned %d objects in %d packages (%d sources, %d errors)",
		scan.Stats.Objects, scan.Stats.Packages, scan.Stats.SourcesRead, scan.Stats.Errors)

	analysis := analyzer.New(catalog).Analyze(scan)
	analyzer.Enrich(analysis, enrichment)

	logVerbose("Found %d findings across %d rules; readiness %d (%s)",
		analysis.Summary.TotalFindings, analysis.RulesChecked,
		analysis.Summary.ReadinessScore, analysis.Summary.ReadinessGrade)

	return &models.AssessmentReport{
		Timestamp: time.Now().UTC(),
		Mode:      string(gw.Mode()),
		Analysis:  analysis,
		Roadmap:   analyzer.BuildRoadmap(analysis),
	}, nil
}

// RunPipeline executes one assessment end to end:
// assess → trend → store → output → policy → threshold.
func RunPipeline(ctx context.Context, pcfg PipelineConfig) (*models.AssessmentReport, error) {
	report, err := RunAssessment(ctx, pcfg)
	if err != nil {
		logError("Assessment failed: %v", err)
		return nil, err
	}

	if err := FinishPipeline(report, pcfg); err != nil {
		return report, err
	}
	return report, nil
}

// FinishPipeline adds the trend, stores, renders and gates an assessment
func FinishPipeline(report *models.AssessmentReport, pcfg PipelineConfig) error {
	if pcfg.Store {
		storagePath, err := getStoragePath()
		if err != nil {
			logError("Failed to get storage path: %v", err)
			return err
		}

		store := storage.NewLocal(storagePath)

		if previous, err := store.GetLatestRun(); err == nil {
			logVerbose("Found previous run from %s", previous.Timestamp)
			analyzer.NewTrendAnalyzer().AddTrend(report, previous)
		} else {
			logDebug("No previous run found: %v", err)
		}

		if err := store.EnsureDirectoryExists(); err != nil {
			logError("Failed to create storage directory: %v", err)
			return err
		}
		if err := store.SaveRun(report); err != nil {
			logError("Failed to store report: %v", err)
			return err
		}
		logVerbose("Stored report in: %s", storagePath)
	}

	if err := generateOutput(report, pcfg.Format, pcfg.Output); err != nil {
		logError("Failed to generate output: %v", err)
		return err
	}

	if err := checkPolicy(report.Analysis, pcfg.PolicyFile); err != nil {
		return err
	}

	score := report.Analysis.Summary.ReadinessScore
	if pcfg.Threshold > 0 && score < pcfg.Threshold {
		logError("Readiness score (%d) below threshold (%d)", score, pcfg.Threshold)
		return &ThresholdExceededError{Score: score, Threshold: pcfg.Threshold}
	}

	return nil
}

// checkPolicy evaluates the explicit policy file, the configured one,
// or the nearest .s4spectre-policy.yaml, in that order.
func checkPolicy(analysis *models.Analysis, explicit string) error {
	path := explicit
	if path == "" {
		path = cfg.PolicyFile
	}
	if path == "" {
		path = policy.FindPolicyFile()
	}
	if path == "" {
		return nil
	}
	logVerbose("Using policy file: %s", path)

	pol, err := policy.LoadFromFile(path)
	if err != nil {
		logError("Failed to load policy: %v", err)
		return &ValidationError{Message: err.Error()}
	}
	if pol == nil {
		if explicit != "" {
			return &ValidationError{Message: fmt.Sprintf("policy file not found: %s", explicit)}
		}
		return nil
	}

	result := pol.Evaluate(analysis)
	if !result.Pass {
		for _, v := range result.Violations {
			logError("Policy violation [%s]: %s", v.Rule, v.Message)
		}
		return &PolicyViolationError{Violations: len(result.Violations), Reason: "policy check failed"}
	}
	logVerbose("Policy check passed")
	return nil
}

// generateOutput renders the assessment in the requested format(s)
func generateOutput(report *models.AssessmentReport, format, outputPath string) error {
	var writer io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	switch format {
	case "text":
		return reporter.NewTextReporter(writer).GenerateAssessment(report)

	case "json":
		return reporter.NewJSONReporter(writer, true).GenerateAssessment(report)

	case "both":
		if err := reporter.NewTextReporter(writer).GenerateAssessment(report); err != nil {
			return err
		}

		if outputPath == "" {
			jsonFile, err := os.Create(bothJSONFile)
			if err != nil {
				return fmt.Errorf("failed to create JSON file: %w", err)
			}
			defer func() { _ = jsonFile.Close() }()
			return reporter.NewJSONReporter(jsonFile, true).GenerateAssessment(report)
		}

		if _, err := fmt.Fprintf(writer, "\n=== JSON Output ===\n\n"); err != nil {
			return err
		}
		return reporter.NewJSONReporter(writer, true).GenerateAssessment(report)

	default:
		return &ValidationError{Message: fmt.Sprintf("unsupported format: %s (use text, json, or both)", format)}
	}
}
