package collector

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DatasetKind identifies a sidecar dataset
type DatasetKind string

// Dataset kinds
const (
	KindInterfaces DatasetKind = "interfaces"
	KindATC        DatasetKind = "atc"
	KindUsage      DatasetKind = "usage"
	KindUnknown    DatasetKind = "unknown"
)

// Format is the serialization of a dataset file
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported dataset file type: %s", filepath.Base(path))
}

// DetectKind identifies which dataset the document holds.
// It uses a two-phase approach:
// 1. Check for an explicit "kind" field
// 2. Fallback to structural analysis
func DetectKind(data []byte, format Format) (DatasetKind, error) {
	structure, err := decodeGeneric(data, format)
	if err != nil {
		return KindUnknown, err
	}

	if kind, ok := structure["kind"].(string); ok && kind != "" {
		return mapKindName(kind)
	}

	return detectByStructure(structure)
}

func mapKindName(name string) (DatasetKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "interfaces", "interface-inventory":
		return KindInterfaces, nil
	case "atc", "atc-results":
		return KindATC, nil
	case "usage", "usage-data", "scmon":
		return KindUsage, nil
	}
	return KindUnknown, fmt.Errorf("unknown dataset kind: %s", name)
}

func detectByStructure(structure map[string]interface{}) (DatasetKind, error) {
	if _, ok := structure["interfaces"].([]interface{}); ok {
		return KindInterfaces, nil
	}

	if entries, ok := structure["entries"].([]interface{}); ok {
		if len(entries) == 0 || firstHasKey(entries, "executions") {
			return KindUsage, nil
		}
	}

	if findings, ok := structure["findings"].([]interface{}); ok {
		if len(findings) == 0 || firstHasKey(findings, "priority") || firstHasKey(findings, "check") {
			return KindATC, nil
		}
	}

	return KindUnknown, fmt.Errorf("unable to detect dataset kind from structure")
}

func firstHasKey(items []interface{}, key string) bool {
	first, ok := items[0].(map[string]interface{})
	if !ok {
		return false
	}
	_, exists := first[key]
	return exists
}

func decodeGeneric(data []byte, format Format) (map[string]interface{}, error) {
	var structure map[string]interface{}
	if err := decode(data, format, &structure); err != nil {
		return nil, err
	}
	if structure == nil {
		return nil, fmt.Errorf("empty dataset document")
	}
	return structure, nil
}

func decode(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}
