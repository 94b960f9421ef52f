package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/s4spectre/internal/collector"
	"github.com/ppiankov/s4spectre/internal/models"
)

// ValidationError represents a validation failure
type ValidationError struct {
	Document string
	Errors   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s:\n  - %s", e.Document, strings.Join(e.Errors, "\n  - "))
}

// Validator checks scan fixtures and sidecar datasets before they are used
type Validator struct{}

// New creates a new validator
func New() *Validator {
	return &Validator{}
}

// rawFixture keeps optional collections as pointers so missing fields can be told apart from empty ones
type rawFixture struct {
	Packages *[]models.PackageInfo           `json:"packages"`
	Objects  *[]models.ObjectRef             `json:"objects"`
	Sources  *map[string]models.SourceBundle `json:"sources"`
	Stats    *models.ScanStats               `json:"stats"`
}

// ValidateFile validates path as a scan fixture when it is a JSON document
// with objects or sources, and as a sidecar dataset otherwise. The returned
// string names what the file was validated as.
func (v *Validator) ValidateFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if looksLikeFixture(data) {
		return "scan fixture", v.ValidateFixture(data)
	}

	format, err := collector.FormatForPath(path)
	if err != nil {
		return "", &ValidationError{Document: "file", Errors: []string{err.Error()}}
	}
	kind, err := collector.DetectKind(data, format)
	if err != nil {
		return "", &ValidationError{Document: "dataset", Errors: []string{err.Error()}}
	}
	if _, err := collector.ParseDataset(data, format, kind); err != nil {
		return string(kind) + " dataset", &ValidationError{Document: string(kind) + " dataset", Errors: []string{err.Error()}}
	}
	return string(kind) + " dataset", nil
}

func looksLikeFixture(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, hasObjects := probe["objects"]
	_, hasSources := probe["sources"]
	return hasObjects || hasSources
}

// ValidateFixture validates a mock-mode scan fixture
func (v *Validator) ValidateFixture(data []byte) error {
	var fx rawFixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return &ValidationError{
			Document: "scan fixture",
			Errors:   []string{fmt.Sprintf("Failed to parse JSON: %v", err)},
		}
	}

	var errors []string

	if fx.Objects == nil {
		errors = append(errors, "Missing required field: 'objects'")
	}
	if fx.Sources == nil {
		errors = append(errors, "Missing required field: 'sources'")
	}

	if fx.Objects != nil {
		seen := make(map[string]bool)
		for i, obj := range *fx.Objects {
			if obj.Name == "" {
				errors = append(errors, fmt.Sprintf("Object %d has no name", i))
				continue
			}
			if obj.Type == "" {
				errors = append(errors, fmt.Sprintf("Object '%s' has no type", obj.Name))
			}
			if seen[obj.Name] {
				errors = append(errors, fmt.Sprintf("Object '%s' is listed more than once", obj.Name))
			}
			seen[obj.Name] = true
		}
	}

	if fx.Sources != nil {
		names := make([]string, 0, len(*fx.Sources))
		for name := range *fx.Sources {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			bundle := (*fx.Sources)[name]
			if name == "" {
				errors = append(errors, "Source bundle with empty object name")
				continue
			}
			if bundle.Type == "" {
				errors = append(errors, fmt.Sprintf("Source '%s' has no type", name))
			} else if !models.IsCodeBearing(bundle.Type) {
				errors = append(errors, fmt.Sprintf("Source '%s' has type '%s' which carries no source", name, bundle.Type))
			}
			if want := models.CountLines(bundle.Source); bundle.Lines != want {
				errors = append(errors, fmt.Sprintf("Source '%s' declares %d lines but has %d", name, bundle.Lines, want))
			}
		}
	}

	if fx.Packages != nil {
		for i, pkg := range *fx.Packages {
			if pkg.Name == "" {
				errors = append(errors, fmt.Sprintf("Package %d has no name", i))
			}
		}
	}

	if fx.Stats != nil {
		s := fx.Stats
		if s.Objects < 0 || s.Packages < 0 || s.SourcesRead < 0 || s.Errors < 0 {
			errors = append(errors, "Field 'stats' counters must be non-negative")
		}
	}

	if len(errors) > 0 {
		return &ValidationError{Document: "scan fixture", Errors: errors}
	}

	return nil
}
