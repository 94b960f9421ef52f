package rules

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/ppiankov/s4spectre/internal/models"
)

// ErrRuleNotFound is returned by ByID for unknown identities
var ErrRuleNotFound = errors.New("rule not found")

// Catalog is an ordered collection of rules keyed by identity
type Catalog struct {
	rules  []Rule
	byID   map[string]int
	logger *slog.Logger
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		byID:   make(map[string]int),
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for load-time diagnostics
func (c *Catalog) WithLogger(logger *slog.Logger) *Catalog {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Register compiles and inserts a rule. The first registration of an identity
// wins; later duplicates are logged and ignored. Malformed rules return a *PatternError.
func (c *Catalog) Register(rule Rule) error {
	if _, exists := c.byID[rule.ID]; exists {
		c.logger.Debug("duplicate rule ignored", "rule", rule.ID)
		return nil
	}
	if err := rule.compile(); err != nil {
		return err
	}

	c.byID[rule.ID] = len(c.rules)
	c.rules = append(c.rules, rule)
	return nil
}

// RegisterAll registers rules in input order, stopping at the first malformed rule
func (c *Catalog) RegisterAll(rules []Rule) error {
	for _, r := range rules {
		if err := c.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// MustRegisterAll is RegisterAll for builtin tables; a malformed builtin rule panics.
func (c *Catalog) MustRegisterAll(rules []Rule) {
	if err := c.RegisterAll(rules); err != nil {
		panic(err)
	}
}

// Len returns the number of rules
func (c *Catalog) Len() int {
	return len(c.rules)
}

// All returns the rules in registration order
func (c *Catalog) All() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// ByID looks up a rule by identity
func (c *Catalog) ByID(id string) (Rule, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Rule{}, ErrRuleNotFound
	}
	return c.rules[idx], nil
}

// BySeverity returns rules whose severity equals level exactly
func (c *Catalog) BySeverity(level models.Severity) []Rule {
	return c.filter(func(r Rule) bool { return r.Severity == level })
}

// ByCategory returns rules whose category contains substr, case-insensitively
func (c *Catalog) ByCategory(substr string) []Rule {
	needle := strings.ToLower(substr)
	return c.filter(func(r Rule) bool {
		return strings.Contains(strings.ToLower(r.Category), needle)
	})
}

// ByModule returns rules whose identity contains prefix, case-insensitively
func (c *Catalog) ByModule(prefix string) []Rule {
	needle := strings.ToLower(prefix)
	return c.filter(func(r Rule) bool {
		return strings.Contains(strings.ToLower(r.ID), needle)
	})
}

// Categories returns the distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.rules {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

func (c *Catalog) filter(keep func(Rule) bool) []Rule {
	var out []Rule
	for _, r := range c.rules {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog loaded with every builtin category table.
// It is built once and must be treated as read-only.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
		for _, table := range builtinTables {
			defaultCatalog.MustRegisterAll(table.rules())
		}
	})
	return defaultCatalog
}

// Clone returns an independent copy of the catalog that can be extended
// (for example with a custom rule pack) without touching the original.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		rules:  make([]Rule, len(c.rules)),
		byID:   make(map[string]int, len(c.byID)),
		logger: c.logger,
	}
	copy(out.rules, c.rules)
	for k, v := range c.byID {
		out.byID[k] = v
	}
	return out
}
