package achievements

import (
	"errors"
	"fmt"
)

// Category groups rules for display.
type Category string

const (
	CategoryProgress    Category = "progress"
	CategoryPerformance Category = "performance"
	CategoryPersistence Category = "persistence"
	CategoryMastery     Category = "mastery"
)

// DisplayName returns the title-case category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryProgress:
		return "Progress"
	case CategoryPerformance:
		return "Performance"
	case CategoryPersistence:
		return "Persistence"
	case CategoryMastery:
		return "Mastery"
	default:
		return "Other"
	}
}

// Rule is one achievement definition.
type Rule struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Points      int
	Requirement Requirement
}

func (r Rule) validate() error {
	if r.ID == "" {
		return &ConfigurationError{Reason: "rule has no id"}
	}
	if r.Points < 0 {
		return &ConfigurationError{RuleID: r.ID, Reason: "points must not be negative"}
	}
	if r.Requirement == nil {
		return &ConfigurationError{RuleID: r.ID, Reason: "rule has no requirement"}
	}
	if err := r.Requirement.validate(); err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) && cfgErr.RuleID == "" {
			return &ConfigurationError{RuleID: r.ID, Reason: cfgErr.Reason}
		}
		return err
	}
	return nil
}

// Catalog is an immutable, ordered set of rules with unique IDs.
type Catalog struct {
	rules []Rule
	byID  map[string]int
}

// NewCatalog validates rules and builds a catalog. Any invalid rule or
// duplicate ID fails the whole catalog.
func NewCatalog(rules []Rule) (*Catalog, error) {
	c := &Catalog{
		rules: make([]Rule, 0, len(rules)),
		byID:  make(map[string]int, len(rules)),
	}
	var errs []error
	for _, r := range rules {
		if err := r.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.byID[r.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate achievement id %q", r.ID))
			continue
		}
		c.byID[r.ID] = len(c.rules)
		c.rules = append(c.rules, r)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("build achievement catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// Rules returns the rules in catalog order. The slice is a copy.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Rule looks up a rule by ID.
func (c *Catalog) Rule(id string) (Rule, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// MaxPoints returns the sum of points over every rule.
func (c *Catalog) MaxPoints() int {
	total := 0
	for _, r := range c.rules {
		total += r.Points
	}
	return total
}
