package rules

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Pack is a custom rule pack file:
//
//	[[rule]]
//	id = "CUST-ZFI-001"
//	category = "Custom Finance"
//	severity = "high"
//	title = "..."
//	pattern = '\bZFI_LEGACY\b'
//	kind = "source"
type Pack struct {
	Rules []Rule `toml:"rule"`
}

// LoadPack reads and decodes a TOML rule pack. Patterns are compiled on Register.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule pack: %w", err)
	}

	var pack Pack
	md, err := toml.Decode(string(data), &pack)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule pack %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("rule pack %s: unknown keys %v", path, undecoded)
	}

	for i, r := range pack.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule pack %s: rule #%d has no id", path, i+1)
		}
	}

	return &pack, nil
}

// WithPack returns a copy of base extended with the rules of the pack at path.
// Rules whose identity already exists in base are ignored.
func WithPack(base *Catalog, path string) (*Catalog, error) {
	pack, err := LoadPack(path)
	if err != nil {
		return nil, err
	}

	catalog := base.Clone()
	if err := catalog.RegisterAll(pack.Rules); err != nil {
		return nil, err
	}
	return catalog, nil
}
