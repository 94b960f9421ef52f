// Package gateway provides read, write and search access to the custom
// development objects of an SAP system.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/s4spectre/internal/models"
)

// Mode identifies a gateway implementation
type Mode string

const (
	ModeMock  Mode = "mock"
	ModeLive  Mode = "live"
	ModeVSP   Mode = "vsp"
	ModeFiles Mode = "files"
)

// Modes lists every supported mode
var Modes = []Mode{ModeMock, ModeLive, ModeVSP, ModeFiles}

// IsValid reports whether m is a known mode
func (m Mode) IsValid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// SupportsWrites reports whether writes reach a real repository.
// Mock writes only touch an in-memory overlay.
func (m Mode) SupportsWrites() bool {
	return m == ModeLive || m == ModeVSP || m == ModeFiles
}

// StatusSaved is the write status reported on success
const StatusSaved = "SAVED"

var (
	// ErrNotFound is returned when the requested object does not exist
	ErrNotFound = errors.New("object not found")
	// ErrReadOnly is returned by gateways that cannot write the requested object
	ErrReadOnly = errors.New("gateway is read-only")
)

// SourceResult is the source of one object
type SourceResult struct {
	ObjectName string `json:"object_name"`
	ObjectType string `json:"object_type"`
	Source     string `json:"source"`
}

// WriteRequest carries a new source for one object
type WriteRequest struct {
	ObjectName string
	ObjectType string
	Package    string
	Source     string
}

// WriteResult is the outcome of a successful write
type WriteResult struct {
	Status string `json:"status"`
	Lines  int    `json:"lines"`
}

// SearchHit is one object returned by a search
type SearchHit struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Package     string `json:"package,omitempty"`
}

// SearchResult lists the objects matching a query
type SearchResult struct {
	Query       string      `json:"query"`
	ResultCount int         `json:"result_count"`
	Results     []SearchHit `json:"results"`
}

// Gateway is the repository access consumed by the scanner and the remediator
type Gateway interface {
	ReadSource(ctx context.Context, name, objectType string) (*SourceResult, error)
	WriteSource(ctx context.Context, req WriteRequest) (*WriteResult, error)
	Search(ctx context.Context, query, objectType string) (*SearchResult, error)
	Mode() Mode
}

// FixtureProvider is implemented by gateways that hold a prebuilt scan result
type FixtureProvider interface {
	Fixture() (*models.ScanResult, error)
}

// Config selects and configures a gateway
type Config struct {
	Mode      Mode
	Fixture   string
	URL       string
	Client    string
	User      string
	Password  string
	Timeout   time.Duration
	VSPBinary string
	Root      string
}

// New builds the gateway selected by cfg.Mode
func New(cfg Config) (Gateway, error) {
	switch cfg.Mode {
	case ModeMock:
		if cfg.Fixture == "" {
			return nil, fmt.Errorf("mock mode requires a fixture file")
		}
		return NewMock(cfg.Fixture), nil
	case ModeLive:
		if cfg.URL == "" {
			return nil, fmt.Errorf("live mode requires a system URL")
		}
		return NewADT(ADTConfig{
			BaseURL:  cfg.URL,
			Client:   cfg.Client,
			User:     cfg.User,
			Password: cfg.Password,
			Timeout:  cfg.Timeout,
		}), nil
	case ModeVSP:
		return NewVSP(cfg.VSPBinary, DefaultExec, cfg.Timeout), nil
	case ModeFiles:
		if cfg.Root == "" {
			return nil, fmt.Errorf("files mode requires a root directory")
		}
		return NewFiles(cfg.Root)
	}
	return nil, fmt.Errorf("unknown gateway mode %q", cfg.Mode)
}

// wildcard compiles a search query where * matches any run of characters.
// Matching is case-insensitive and anchored on the whole name.
func wildcard(query string) *regexp.Regexp {
	parts := strings.Split(query, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)^` + strings.Join(parts, ".*") + `$`)
}

// typeMatches reports whether objectType satisfies the optional filter
func typeMatches(filter, objectType string) bool {
	if filter == "" {
		return true
	}
	return models.NormalizeObjectType(filter) == models.NormalizeObjectType(objectType)
}

func notFound(name string) error {
	return fmt.Errorf("%s: %w", name, ErrNotFound)
}
