package achievements

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

// SupportedMajor is the only catalog file major version accepted.
const SupportedMajor = "v1"

const (
	typeMedals = "difficulty_medals"
	opIncludes = "includes"
	opAllTrue  = "all_true"
)

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

type catalogFile struct {
	Version      string     `yaml:"version"`
	Achievements []fileRule `yaml:"achievements"`
}

type fileRule struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Icon        string          `yaml:"icon"`
	Category    string          `yaml:"category"`
	Points      int             `yaml:"points"`
	Requirement fileRequirement `yaml:"requirement"`
}

type fileRequirement struct {
	Type     string `yaml:"type"`
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value"`
}

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is invalid.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded achievement catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file from disk.
func LoadCatalog(path string, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, logger)
}

// ParseCatalog decodes and validates a YAML catalog. Rules with an unknown
// requirement type or operator are logged as warnings and left out.
// Structural problems, unsupported versions and duplicate IDs are errors.
func ParseCatalog(data []byte, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("catalog")

	if err := validateCatalogDoc(data); err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if !semver.IsValid(f.Version) {
		return nil, fmt.Errorf("catalog version %q is not a semantic version", f.Version)
	}
	if major := semver.Major(f.Version); major != SupportedMajor {
		return nil, fmt.Errorf("catalog version %s unsupported (want %s.x)", f.Version, SupportedMajor)
	}

	rules := make([]Rule, 0, len(f.Achievements))
	for _, fr := range f.Achievements {
		rule, err := fr.toRule()
		if err != nil {
			var cfgErr *ConfigurationError
			if errors.As(err, &cfgErr) {
				logger.Warn("skipping achievement rule",
					zap.String("rule_id", fr.ID),
					zap.String("reason", cfgErr.Reason),
				)
				continue
			}
			return nil, err
		}
		rules = append(rules, rule)
	}

	c, err := NewCatalog(rules)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", zap.String("version", f.Version), zap.Int("rules", c.Len()))
	return c, nil
}

func (fr fileRule) toRule() (Rule, error) {
	req, err := fr.Requirement.decode()
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.RuleID = fr.ID
		}
		return Rule{}, err
	}
	rule := Rule{
		ID:          fr.ID,
		Name:        fr.Name,
		Description: fr.Description,
		Icon:        fr.Icon,
		Category:    Category(fr.Category),
		Points:      fr.Points,
		Requirement: req,
	}
	return rule, rule.validate()
}

func (r fileRequirement) decode() (Requirement, error) {
	if r.Type == typeMedals {
		switch r.Operator {
		case opIncludes:
			s, ok := r.Value.(string)
			if !ok {
				return nil, &ConfigurationError{Reason: "includes expects a tier name"}
			}
			req := MedalIncludes{Tier: curriculum.Difficulty(s)}
			return req, req.validate()
		case opAllTrue:
			list, ok := r.Value.([]any)
			if !ok {
				return nil, &ConfigurationError{Reason: "all_true expects a list of tiers"}
			}
			req := AllMedals{Tiers: make([]curriculum.Difficulty, 0, len(list))}
			for _, v := range list {
				s, ok := v.(string)
				if !ok {
					return nil, &ConfigurationError{Reason: "all_true expects a list of tiers"}
				}
				req.Tiers = append(req.Tiers, curriculum.Difficulty(s))
			}
			return req, req.validate()
		default:
			return nil, &ConfigurationError{Reason: fmt.Sprintf("operator %q not valid for %s", r.Operator, typeMedals)}
		}
	}

	m := Metric(r.Type)
	if !m.Valid() {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown requirement type %q", r.Type)}
	}
	op := Op(r.Operator)
	if !op.Valid() {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown operator %q for %s", r.Operator, r.Type)}
	}
	var value float64
	switch v := r.Value.(type) {
	case int:
		value = float64(v)
	case float64:
		value = v
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%s expects a numeric value", r.Type)}
	}
	req := Threshold{Metric: m, Op: op, Value: value}
	return req, req.validate()
}

// validateCatalogDoc checks the document structure against the embedded
// JSON schema. YAML is round-tripped through JSON so the validator sees
// plain JSON values.
func validateCatalogDoc(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	sch, err := catalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(catalogSchemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		const url = "schema://achievement-catalog.json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}
