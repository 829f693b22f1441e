package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tickreg/internal/ir"
)

// Scenario defines a registry conformance scenario.
// Scenarios drive a fresh registry through a sequence of add and get steps
// and assert on the resulting trace and final registry contents.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional path to a CUE event catalog. Its events are
	// registered, in declaration order, before the first step. Every
	// catalog event must be accepted.
	// Relative paths are resolved against the scenario file location.
	Catalog string `yaml:"catalog,omitempty"`

	// Steps run in order against the registry.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final registry.
	// Supported types: registry_count, active_at, inactive_at, kinds_in_order
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is either an add or a get. Exactly one of Add and Get must be set.
//
//	steps:
//	  - add: {kind: B, range: {x: 2, y: 10}}
//	    expect: ok
//	  - get: 5
//	    kind: B
type Step struct {
	// Add registers an event.
	Add *ir.EventDoc `yaml:"add,omitempty"`

	// Get queries the active event at an instant.
	Get *int64 `yaml:"get,omitempty"`

	// Expect is the expected outcome. For add: ok (default),
	// duplicate_condition or invalid_event. For get: found (default) or
	// not_found.
	Expect string `yaml:"expect,omitempty"`

	// Kind is the expected kind of the event returned by a get.
	// Ignored when empty.
	Kind string `yaml:"kind,omitempty"`
}

// Step outcomes recorded in the trace.
const (
	OutcomeOK                 = "ok"
	OutcomeDuplicateCondition = "duplicate_condition"
	OutcomeInvalidEvent       = "invalid_event"
	OutcomeFound              = "found"
	OutcomeNotFound           = "not_found"
)

// Assertion validates the final registry.
type Assertion struct {
	// Type specifies the assertion type:
	// - "registry_count": the registry holds exactly Count entries
	// - "active_at": the event active at At has kind Kind
	// - "inactive_at": no event is active at At
	// - "kinds_in_order": the registered kinds, in insertion order, equal Kinds
	Type string `yaml:"type"`

	// At is the probed instant (active_at, inactive_at).
	At *int64 `yaml:"at,omitempty"`

	// Kind is the expected event kind (active_at).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of entries (registry_count).
	Count int `yaml:"count,omitempty"`

	// Kinds is the expected kind order (kinds_in_order).
	Kinds []string `yaml:"kinds,omitempty"`
}

// Assertion type constants.
const (
	AssertRegistryCount = "registry_count"
	AssertActiveAt      = "active_at"
	AssertInactiveAt    = "inactive_at"
	AssertKindsInOrder  = "kinds_in_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the catalog path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) && basePath != "" {
		scenario.Catalog = filepath.Join(basePath, scenario.Catalog)
	}
	if scenario.Catalog != "" {
		if _, err := os.Stat(scenario.Catalog); err != nil {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
		}
	}

	return scenario, nil
}

// ParseScenario decodes a scenario from YAML. The catalog path, if any, is
// left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
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

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, st *Step) error {
	switch {
	case st.Add != nil && st.Get != nil:
		return fmt.Errorf("steps[%d]: add and get are mutually exclusive", index)
	case st.Add != nil:
		// A missing condition is left for the registry to reject; two
		// conditions in one step can never be registered at all.
		if _, err := st.Add.Condition(); errors.Is(err, ir.ErrAmbiguousCondition) {
			return fmt.Errorf("steps[%d].add: %w", index, err)
		}
		switch st.Expect {
		case "", OutcomeOK, OutcomeDuplicateCondition, OutcomeInvalidEvent:
		default:
			return fmt.Errorf("steps[%d]: unknown add outcome %q", index, st.Expect)
		}
		if st.Kind != "" {
			return fmt.Errorf("steps[%d]: kind applies to get steps only", index)
		}
	case st.Get != nil:
		switch st.Expect {
		case "", OutcomeFound:
		case OutcomeNotFound:
			if st.Kind != "" {
				return fmt.Errorf("steps[%d]: kind cannot be combined with not_found", index)
			}
		default:
			return fmt.Errorf("steps[%d]: unknown get outcome %q", index, st.Expect)
		}
	default:
		return fmt.Errorf("steps[%d]: one of add or get is required", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRegistryCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for registry_count", index)
		}
	case AssertActiveAt:
		if a.At == nil {
			return fmt.Errorf("assertions[%d]: at is required for active_at", index)
		}
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for active_at", index)
		}
	case AssertInactiveAt:
		if a.At == nil {
			return fmt.Errorf("assertions[%d]: at is required for inactive_at", index)
		}
	case AssertKindsInOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for kinds_in_order", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
