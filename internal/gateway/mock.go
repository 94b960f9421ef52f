package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/ppiankov/s4spectre/internal/models"
)

// Mock serves a prebuilt scan fixture. The fixture is read once and cached;
// writes land in an in-memory overlay that later reads observe.
type Mock struct {
	path string

	once    sync.Once
	fixture *models.ScanResult
	loadErr error

	mu      sync.Mutex
	overlay map[string]string
}

// NewMock creates a mock gateway backed by the fixture file at path
func NewMock(path string) *Mock {
	return &Mock{path: path, overlay: make(map[string]string)}
}

// NewMockFromScan creates a mock gateway around an in-memory scan result
func NewMockFromScan(scan *models.ScanResult) *Mock {
	m := &Mock{overlay: make(map[string]string)}
	m.once.Do(func() { m.fixture = normalizeFixture(scan) })
	return m
}

// LoadFixture reads a scan fixture document
func LoadFixture(path string) (*models.ScanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var scan models.ScanResult
	if err := json.Unmarshal(data, &scan); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return normalizeFixture(&scan), nil
}

func normalizeFixture(scan *models.ScanResult) *models.ScanResult {
	if scan == nil {
		return models.NewScanResult()
	}
	if scan.Packages == nil {
		scan.Packages = []models.PackageInfo{}
	}
	if scan.Objects == nil {
		scan.Objects = []models.ObjectRef{}
	}
	if scan.Sources == nil {
		scan.Sources = make(map[string]models.SourceBundle)
	}
	return scan
}

// Fixture returns the cached scan result
func (m *Mock) Fixture() (*models.ScanResult, error) {
	m.once.Do(func() {
		m.fixture, m.loadErr = LoadFixture(m.path)
	})
	return m.fixture, m.loadErr
}

// Mode implements Gateway
func (m *Mock) Mode() Mode { return ModeMock }

// ReadSource implements Gateway
func (m *Mock) ReadSource(_ context.Context, name, objectType string) (*SourceResult, error) {
	m.mu.Lock()
	src, ok := m.overlay[name]
	m.mu.Unlock()
	if ok {
		return &SourceResult{ObjectName: name, ObjectType: objectType, Source: src}, nil
	}

	scan, err := m.Fixture()
	if err != nil {
		return nil, err
	}
	bundle, ok := scan.Sources[name]
	if !ok {
		return nil, notFound(name)
	}
	t := bundle.Type
	if t == "" {
		t = objectType
	}
	return &SourceResult{ObjectName: name, ObjectType: t, Source: bundle.Source}, nil
}

// WriteSource implements Gateway
func (m *Mock) WriteSource(_ context.Context, req WriteRequest) (*WriteResult, error) {
	if req.ObjectName == "" {
		return nil, fmt.Errorf("write request without object name")
	}
	m.mu.Lock()
	m.overlay[req.ObjectName] = req.Source
	m.mu.Unlock()
	return &WriteResult{Status: StatusSaved, Lines: models.CountLines(req.Source)}, nil
}

// Search implements Gateway
func (m *Mock) Search(_ context.Context, query, objectType string) (*SearchResult, error) {
	scan, err := m.Fixture()
	if err != nil {
		return nil, err
	}
	re := wildcard(query)
	res := &SearchResult{Query: query, Results: []SearchHit{}}
	for _, obj := range scan.Objects {
		if !re.MatchString(obj.Name) || !typeMatches(objectType, obj.Type) {
			continue
		}
		res.Results = append(res.Results, SearchHit{
			Name:        obj.Name,
			Type:        obj.Type,
			Description: obj.Description,
			Package:     obj.Package,
		})
	}
	res.ResultCount = len(res.Results)
	return res, nil
}
