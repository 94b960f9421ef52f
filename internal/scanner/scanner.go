// Package scanner collects the custom objects of a system and their source.
package scanner

import (
	"context"
	"log/slog"

	"github.com/ppiankov/s4spectre/internal/gateway"
	"github.com/ppiankov/s4spectre/internal/models"
)

// DefaultPrefixes are the customer namespaces searched by default
var DefaultPrefixes = []string{"Z*", "Y*"}

// Scanner walks the customer namespaces through a gateway
type Scanner struct {
	gw       gateway.Gateway
	logger   *slog.Logger
	progress Progress
	prefixes []string
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the logger used for read failures
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithProgress sets the progress reporter
func WithProgress(p Progress) Option {
	return func(s *Scanner) { s.progress = p }
}

// WithPrefixes overrides the searched name patterns
func WithPrefixes(prefixes ...string) Option {
	return func(s *Scanner) {
		if len(prefixes) > 0 {
			s.prefixes = prefixes
		}
	}
}

// New creates a scanner over gw
func New(gw gateway.Gateway, opts ...Option) *Scanner {
	s := &Scanner{
		gw:       gw,
		logger:   slog.Default(),
		progress: NoOpProgress{},
		prefixes: DefaultPrefixes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns the objects, packages and sources of the system.
// It never fails: gateway errors are logged and counted in Stats.Errors.
func (s *Scanner) Scan(ctx context.Context) *models.ScanResult {
	if fp, ok := s.gw.(gateway.FixtureProvider); ok {
		fixture, err := fp.Fixture()
		if err != nil {
			s.logger.Warn("failed to load scan fixture", "error", err)
			result := models.NewScanResult()
			result.Stats.Errors = 1
			return result
		}
		return fixture
	}

	result := models.NewScanResult()
	s.collectObjects(ctx, result)
	s.readSources(ctx, result)

	result.Stats.Objects = len(result.Objects)
	result.Stats.Packages = len(result.Packages)
	return result
}

func (s *Scanner) collectObjects(ctx context.Context, result *models.ScanResult) {
	seen := make(map[string]bool)
	packages := make(map[string]bool)

	for _, prefix := range s.prefixes {
		res, err := s.gw.Search(ctx, prefix, "")
		if err != nil {
			s.logger.Warn("object search failed", "query", prefix, "error", err)
			result.Stats.Errors++
			continue
		}
		for _, hit := range res.Results {
			if hit.Name == "" || seen[hit.Name] {
				continue
			}
			seen[hit.Name] = true
			result.Objects = append(result.Objects, models.ObjectRef{
				Name:        hit.Name,
				Type:        models.NormalizeObjectType(hit.Type),
				Description: hit.Description,
				Package:     hit.Package,
			})
			if hit.Package != "" && !packages[hit.Package] {
				packages[hit.Package] = true
				result.Packages = append(result.Packages, models.PackageInfo{Name: hit.Package})
			}
		}
	}
}

func (s *Scanner) readSources(ctx context.Context, result *models.ScanResult) {
	var readable []models.ObjectRef
	for _, obj := range result.Objects {
		if models.IsCodeBearing(obj.Type) {
			readable = append(readable, obj)
		}
	}
	if len(readable) == 0 {
		return
	}

	task := s.progress.StartTask("Reading sources", len(readable))
	defer task.Complete()

	for _, obj := range readable {
		task.Describe(obj.Name)
		src, err := s.gw.ReadSource(ctx, obj.Name, obj.Type)
		task.Increment(1)
		if err != nil {
			s.logger.Warn("failed to read source", "object", obj.Name, "type", obj.Type, "error", err)
			result.Stats.Errors++
			continue
		}
		result.Sources[obj.Name] = models.NewSourceBundle(obj.Type, src.Source)
		result.Stats.SourcesRead++
	}
}
