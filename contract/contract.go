package contract

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a declarative call-ordering contract.
type Document struct {
	// Name uniquely identifies this contract. Used for golden file naming.
	Name string `yaml:"name"`

	// Description explains what this contract validates.
	Description string `yaml:"description"`

	// Actions lists the actions the pattern under test may invoke,
	// in the order they are handed to the pattern.
	Actions []ActionDecl `yaml:"actions"`

	// ValidSequences whitelists the acceptable call orders.
	ValidSequences []TemplateDecl `yaml:"valid_sequences"`
}

// ActionDecl declares one action and its possible outcomes.
type ActionDecl struct {
	// Name is the action's identity. Must be unique within the document.
	Name string `yaml:"name"`

	// Outcomes lists the action's possible effects. Must be non-empty.
	Outcomes []OutcomeDecl `yaml:"outcomes"`
}

// OutcomeDecl declares one possible effect of an action.
type OutcomeDecl struct {
	// Name identifies the outcome within its action.
	Name string `yaml:"name"`

	// Effect selects the outcome behavior: returns, fails, resolves, rejects.
	Effect string `yaml:"effect"`

	// Value is the produced value for returns/resolves effects. Optional.
	Value any `yaml:"value,omitempty"`

	// Error is the error message for fails/rejects effects.
	Error string `yaml:"error,omitempty"`
}

// TemplateDecl declares one valid call sequence.
type TemplateDecl struct {
	// Steps constrain each position of the sequence. An empty list declares
	// the empty sequence as valid.
	Steps []StepDecl `yaml:"steps"`
}

// StepDecl constrains one position of a valid sequence.
type StepDecl struct {
	// Action names the action that must occur at this position.
	Action string `yaml:"action"`

	// Outcomes optionally restricts which outcomes are permitted here.
	// Empty means any outcome of the action.
	Outcomes []string `yaml:"outcomes,omitempty"`
}

// Outcome effect constants.
const (
	EffectReturns  = "returns"
	EffectFails    = "fails"
	EffectResolves = "resolves"
	EffectRejects  = "rejects"
)

// Load reads and parses a contract YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a contract document from raw YAML.
func LoadBytes(data []byte) (*Document, error) {
	// Parse YAML with strict field validation (catches typos like
	// "valid_sequence:" vs "valid_sequences:")
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, fmt.Errorf("invalid contract: %w", err)
	}

	return &doc, nil
}

// validateDocument checks that required fields are present and all
// references resolve.
func validateDocument(d *Document) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}

	if d.Description == "" {
		return fmt.Errorf("description is required")
	}

	// A contract with no actions is legal: it declares one trivial scenario
	// in which the pattern must make no calls.
	outcomesByAction := make(map[string]map[string]bool, len(d.Actions))
	for i, action := range d.Actions {
		if action.Name == "" {
			return fmt.Errorf("actions[%d]: name is required", i)
		}
		if _, dup := outcomesByAction[action.Name]; dup {
			return fmt.Errorf("actions[%d]: duplicate action name %q", i, action.Name)
		}
		if len(action.Outcomes) == 0 {
			return fmt.Errorf("actions[%d] (%s): outcomes list is required and must be non-empty", i, action.Name)
		}

		names := make(map[string]bool, len(action.Outcomes))
		for j, outcome := range action.Outcomes {
			if err := validateOutcome(&outcome); err != nil {
				return fmt.Errorf("actions[%d] (%s) outcomes[%d]: %w", i, action.Name, j, err)
			}
			if names[outcome.Name] {
				return fmt.Errorf("actions[%d] (%s): duplicate outcome name %q", i, action.Name, outcome.Name)
			}
			names[outcome.Name] = true
		}
		outcomesByAction[action.Name] = names
	}

	for i, tmpl := range d.ValidSequences {
		for j, step := range tmpl.Steps {
			if step.Action == "" {
				return fmt.Errorf("valid_sequences[%d] steps[%d]: action is required", i, j)
			}
			outcomes, ok := outcomesByAction[step.Action]
			if !ok {
				return fmt.Errorf("valid_sequences[%d] steps[%d]: unknown action %q", i, j, step.Action)
			}
			for _, name := range step.Outcomes {
				if !outcomes[name] {
					return fmt.Errorf("valid_sequences[%d] steps[%d]: action %q has no outcome %q", i, j, step.Action, name)
				}
			}
		}
	}

	return nil
}

// validateOutcome validates a single outcome declaration based on its effect.
func validateOutcome(o *OutcomeDecl) error {
	if o.Name == "" {
		return fmt.Errorf("name is required")
	}

	switch o.Effect {
	case EffectReturns, EffectResolves:
		// Value is optional; absent means the outcome produces nil.
	case EffectFails, EffectRejects:
		if o.Error == "" {
			return fmt.Errorf("error message is required for %s effect", o.Effect)
		}
	case "":
		return fmt.Errorf("effect is required")
	default:
		return fmt.Errorf("unknown effect %q", o.Effect)
	}

	return nil
}
