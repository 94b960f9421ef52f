package transform

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ppiankov/s4spectre/internal/rules"
)

// ErrTransformNotFound is returned by Get for rule identities without a transform
var ErrTransformNotFound = errors.New("transform not found")

// Registry maps rule identities to transforms
type Registry struct {
	byID  map[string]Transform
	order []string
}

// Stats summarizes a registry
type Stats struct {
	Total    int            `json:"total"`
	ByModule map[string]int `json:"byModule"`
}

// Modules returns the module names of the stats sorted alphabetically
func (s Stats) Modules() []string {
	out := make([]string, 0, len(s.ByModule))
	for m := range s.ByModule {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Transform)}
}

// Register adds a transform. A second transform for the same rule is an error.
func (r *Registry) Register(t Transform) error {
	if t == nil {
		return fmt.Errorf("nil transform")
	}
	id := t.RuleID()
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("duplicate transform for rule %s", id)
	}
	r.byID[id] = t
	r.order = append(r.order, id)
	return nil
}

// Get returns the transform bound to ruleID
func (r *Registry) Get(ruleID string) (Transform, error) {
	t, ok := r.byID[ruleID]
	if !ok {
		return nil, ErrTransformNotFound
	}
	return t, nil
}

// Has reports whether ruleID has a transform
func (r *Registry) Has(ruleID string) bool {
	_, ok := r.byID[ruleID]
	return ok
}

// All returns the transforms in registration order
func (r *Registry) All() []Transform {
	out := make([]Transform, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of transforms
func (r *Registry) Len() int {
	return len(r.order)
}

// Stats returns the total count and the count per rule module
func (r *Registry) Stats() Stats {
	s := Stats{Total: len(r.order), ByModule: make(map[string]int)}
	for _, id := range r.order {
		s.ByModule[rules.ModuleOf(id)]++
	}
	return s
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding every builtin transform
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, t := range builtins() {
			if err := defaultRegistry.Register(t); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}
