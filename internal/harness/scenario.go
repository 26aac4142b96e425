package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ccgdrs/internal/compiler"
)

// Scenario is a batch of sentences compiled under one configuration,
// with per-sentence expectations and assertions over the results.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options lists compile flags by name, e.g. remove_unary_props.
	Options []string `yaml:"options,omitempty"`

	// Pronouns overrides pronoun templates for this scenario.
	Pronouns map[string]string `yaml:"pronouns,omitempty"`

	// Sentences are compiled in order.
	Sentences []Sentence `yaml:"sentences"`

	// Assertions validate the compiled DRSs.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Sentence is one derivation to compile.
type Sentence struct {
	// ID names the sentence in assertions and golden output.
	ID string `yaml:"id"`

	// Text is the surface sentence, for reporting.
	Text string `yaml:"text"`

	// Derivation is the CCGbank AUTO derivation.
	Derivation string `yaml:"derivation"`

	// Expect optionally pins the outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect pins the outcome of a sentence. Exactly one field is set.
type Expect struct {
	// DRS is the expected result in linear or set notation. Comparison is
	// on the rendered linear form.
	DRS string `yaml:"drs,omitempty"`

	// Error is the expected failure kind, e.g. UnknownRule.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the DRS of one sentence, or the whole run for the
// store-level types.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Sentence is the ID of the sentence under test.
	Sentence string `yaml:"sentence,omitempty"`

	// Relation is the relation name (has_relation, lacks_relation).
	Relation string `yaml:"relation,omitempty"`

	// Count is the expected count (referent_count, distinct_drs).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertProper         = "proper"
	AssertPure           = "pure"
	AssertFOLConvertible = "fol_convertible"
	AssertHasRelation    = "has_relation"
	AssertLacksRelation  = "lacks_relation"
	AssertReferentCount  = "referent_count"
	AssertDistinctDRS    = "distinct_drs"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// compileOptions parses the scenario's option names.
func (s *Scenario) compileOptions() (compiler.Options, error) {
	var o compiler.Options
	for _, name := range s.Options {
		flag, err := compiler.ParseOptions(name)
		if err != nil {
			return 0, err
		}
		o |= flag
	}
	return o, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Sentences) == 0 {
		return fmt.Errorf("sentences list is required and must be non-empty")
	}

	if _, err := s.compileOptions(); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	ids := make(map[string]bool, len(s.Sentences))
	for i, sent := range s.Sentences {
		if sent.ID == "" {
			return fmt.Errorf("sentences[%d]: id is required", i)
		}
		if ids[sent.ID] {
			return fmt.Errorf("sentences[%d]: duplicate id %q", i, sent.ID)
		}
		ids[sent.ID] = true
		if sent.Derivation == "" {
			return fmt.Errorf("sentences[%d]: derivation is required", i)
		}
		if e := sent.Expect; e != nil && (e.DRS == "") == (e.Error == "") {
			return fmt.Errorf("sentences[%d].expect: exactly one of drs and error is required", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, ids); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, ids map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertProper, AssertPure, AssertFOLConvertible, AssertReferentCount,
		AssertHasRelation, AssertLacksRelation:
		if !ids[a.Sentence] {
			return fmt.Errorf("assertions[%d]: unknown sentence %q for %s", index, a.Sentence, a.Type)
		}
	case AssertDistinctDRS:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	switch a.Type {
	case AssertHasRelation, AssertLacksRelation:
		if a.Relation == "" {
			return fmt.Errorf("assertions[%d]: relation is required for %s", index, a.Type)
		}
	case AssertReferentCount, AssertDistinctDRS:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	}

	return nil
}
