package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Template is the template path, relative to the scenario file.
	Template string `yaml:"template"`

	// Seed fixes the run. Nil means 0.
	Seed *int64 `yaml:"seed,omitempty"`

	// Rows is the number of rows to generate. Zero means DefaultRows.
	Rows int `yaml:"rows,omitempty"`

	// Locale overrides the template locale.
	Locale string `yaml:"locale,omitempty"`

	// Assertions validate the generated dataset.
	Assertions []Assertion `yaml:"assertions"`
}

// DefaultRows is the row count of scenarios that set none.
const DefaultRows = 10

// Assertion validates the generated dataset.
type Assertion struct {
	// Type selects the check; see the Assert constants.
	Type string `yaml:"type"`

	// Column is the column checked (values_in, matches, range, unique,
	// not_empty).
	Column string `yaml:"column,omitempty"`

	// Columns is the expected column order (columns).
	Columns []string `yaml:"columns,omitempty"`

	// Values are the allowed values (values_in), compared as formatted
	// strings.
	Values []any `yaml:"values,omitempty"`

	// Pattern is a regular expression (matches).
	Pattern string `yaml:"pattern,omitempty"`

	// Min and Max bound numeric values (range). Either may be absent.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// Count is the expected row count (row_count).
	Count int `yaml:"count,omitempty"`

	// Where restricts the checked rows to those whose columns equal these
	// values.
	Where map[string]any `yaml:"where,omitempty"`

	// Expect contains expected values of the matched row (row).
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertColumns  = "columns"
	AssertRowCount = "row_count"
	AssertValuesIn = "values_in"
	AssertMatches  = "matches"
	AssertRange    = "range"
	AssertUnique   = "unique"
	AssertNotEmpty = "not_empty"
	AssertRow      = "row"
)

// LoadScenario reads and parses a scenario YAML file. The template path is
// resolved against the scenario's directory. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Template != "" && !filepath.IsAbs(scenario.Template) {
		scenario.Template = filepath.Join(filepath.Dir(path), scenario.Template)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Template == "" {
		return fmt.Errorf("template is required")
	}
	if s.Rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", s.Rows)
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion[%d]: %w", i, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertColumns:
		if len(a.Columns) == 0 {
			return fmt.Errorf("columns assertion requires columns")
		}
	case AssertRowCount:
	case AssertValuesIn:
		if a.Column == "" || len(a.Values) == 0 {
			return fmt.Errorf("values_in assertion requires column and values")
		}
	case AssertMatches:
		if a.Column == "" || a.Pattern == "" {
			return fmt.Errorf("matches assertion requires column and pattern")
		}
	case AssertRange:
		if a.Column == "" || (a.Min == nil && a.Max == nil) {
			return fmt.Errorf("range assertion requires column and min or max")
		}
	case AssertUnique, AssertNotEmpty:
		if a.Column == "" {
			return fmt.Errorf("%s assertion requires column", a.Type)
		}
	case AssertRow:
		if len(a.Expect) == 0 {
			return fmt.Errorf("row assertion requires expect")
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// FindScenarios lists the scenario files under dir, sorted. A non-empty
// filter is a glob matched against file names without extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	sort.Strings(files)
	return files, err
}
