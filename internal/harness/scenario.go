package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tenniscalc/internal/ingest"
)

// Scenario is one scripted run: input text, ingestion options, queries with
// expected answers, and assertions on the ingested tournament.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the raw match text.
	Input string `yaml:"input,omitempty"`

	// InputFile is a path to the match text, used when Input is empty.
	// Relative paths are resolved against the scenario file's directory.
	InputFile string `yaml:"input_file,omitempty"`

	// Options controls ingestion.
	Options ScenarioOptions `yaml:"options,omitempty"`

	// IngestError is the error code ingestion must fail with, if any.
	IngestError string `yaml:"ingest_error,omitempty"`

	// Queries run in order against the reloaded tournament.
	Queries []QueryStep `yaml:"queries,omitempty"`

	// Assertions validate the ingested tournament.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Token is an optional fixed ingestion token.
	// If empty, defaults to "test-ingestion-default".
	Token string `yaml:"token,omitempty"`
}

// ScenarioOptions mirrors ingest.Options. Overwrite defaults to true.
type ScenarioOptions struct {
	Overwrite   *bool `yaml:"overwrite,omitempty"`
	SkipInvalid bool  `yaml:"skip_invalid,omitempty"`
}

// IngestOptions converts to ingest.Options.
func (o ScenarioOptions) IngestOptions() ingest.Options {
	opts := ingest.DefaultOptions()
	if o.Overwrite != nil {
		opts.Overwrite = *o.Overwrite
	}
	opts.SkipInvalid = o.SkipInvalid
	return opts
}

// QueryStep is one query and its expected outcome. Exactly one of Expect
// and Error is set.
type QueryStep struct {
	Query  string `yaml:"query"`
	Expect string `yaml:"expect,omitempty"`
	Error  string `yaml:"error,omitempty"` // expected error code
}

// Assertion validates the ingested tournament.
type Assertion struct {
	// Type is one of: ingested, skipped, winner, in_progress.
	Type string `yaml:"type"`

	// Matches are the expected ingested ids (used by ingested).
	Matches []string `yaml:"matches,omitempty"`

	// Count is the expected number of skipped blocks (used by skipped).
	Count int `yaml:"count,omitempty"`

	// Match is the match id (used by winner and in_progress).
	Match string `yaml:"match,omitempty"`

	// Player is the expected winner (used by winner).
	Player string `yaml:"player,omitempty"`
}

// Assertion type constants.
const (
	AssertIngested   = "ingested"
	AssertSkipped    = "skipped"
	AssertWinner     = "winner"
	AssertInProgress = "in_progress"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving input_file relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos)
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.InputFile != "" && !filepath.IsAbs(scenario.InputFile) && basePath != "" {
		scenario.InputFile = filepath.Join(basePath, scenario.InputFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// ReadInput returns the scenario's match text.
func (s *Scenario) ReadInput() (string, error) {
	if s.InputFile == "" {
		return s.Input, nil
	}
	data, err := os.ReadFile(s.InputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Input == "" && s.InputFile == "":
		return fmt.Errorf("one of input or input_file is required")
	case s.Input != "" && s.InputFile != "":
		return fmt.Errorf("input and input_file are mutually exclusive")
	}

	if s.InputFile != "" {
		if _, err := os.Stat(s.InputFile); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.InputFile)
		}
	}

	if len(s.Queries) == 0 && len(s.Assertions) == 0 && s.IngestError == "" {
		return fmt.Errorf("at least one of queries, assertions or ingest_error is required")
	}

	for i, q := range s.Queries {
		if q.Query == "" {
			return fmt.Errorf("queries[%d]: query is required", i)
		}
		if (q.Expect == "") == (q.Error == "") {
			return fmt.Errorf("queries[%d]: exactly one of expect or error is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertIngested:
		if len(a.Matches) == 0 {
			return fmt.Errorf("assertions[%d]: matches list is required for ingested", index)
		}
	case AssertSkipped:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for skipped", index)
		}
	case AssertWinner:
		if a.Match == "" || a.Player == "" {
			return fmt.Errorf("assertions[%d]: match and player are required for winner", index)
		}
	case AssertInProgress:
		if a.Match == "" {
			return fmt.Errorf("assertions[%d]: match is required for in_progress", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
