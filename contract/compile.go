package contract

import (
	"errors"
	"fmt"

	"github.com/jakewins/transactional-promises/callorder"
)

// Compiled is a contract document resolved into verifier inputs.
//
// Compilation preserves outcome identity: every outcome declaration becomes
// exactly one *callorder.Outcome, and template steps reference those same
// pointers, so outcome-restricted steps match by identity as the verifier
// requires.
type Compiled struct {
	// Doc is the source document.
	Doc *Document

	// Actions are the compiled actions in declaration order.
	Actions []*callorder.Action

	// Valid are the compiled valid-sequence templates in declaration order.
	Valid []callorder.Template

	actionsByName  map[string]*callorder.Action
	outcomesByName map[string]map[string]*callorder.Outcome
}

// Compile resolves the document into callorder values.
// The document must already be valid (Load validates); Compile reports any
// dangling reference it still encounters.
func (d *Document) Compile() (*Compiled, error) {
	c := &Compiled{
		Doc:            d,
		actionsByName:  make(map[string]*callorder.Action, len(d.Actions)),
		outcomesByName: make(map[string]map[string]*callorder.Outcome, len(d.Actions)),
	}

	for _, decl := range d.Actions {
		outcomes := make([]*callorder.Outcome, len(decl.Outcomes))
		byName := make(map[string]*callorder.Outcome, len(decl.Outcomes))
		for i, o := range decl.Outcomes {
			outcome := buildOutcome(o)
			outcomes[i] = outcome
			byName[o.Name] = outcome
		}

		action, err := callorder.NewAction(decl.Name, outcomes...)
		if err != nil {
			return nil, fmt.Errorf("compile action %q: %w", decl.Name, err)
		}

		c.Actions = append(c.Actions, action)
		c.actionsByName[decl.Name] = action
		c.outcomesByName[decl.Name] = byName
	}

	for i, tmpl := range d.ValidSequences {
		compiled, err := c.compileTemplate(tmpl)
		if err != nil {
			return nil, fmt.Errorf("compile valid_sequences[%d]: %w", i, err)
		}
		c.Valid = append(c.Valid, compiled)
	}

	return c, nil
}

// Action returns the compiled action with the given name, or nil.
func (c *Compiled) Action(name string) *callorder.Action {
	return c.actionsByName[name]
}

// Outcome returns the compiled outcome for an action/outcome name pair,
// or nil. Template authors use this to reference outcomes by identity.
func (c *Compiled) Outcome(action, outcome string) *callorder.Outcome {
	return c.outcomesByName[action][outcome]
}

func (c *Compiled) compileTemplate(tmpl TemplateDecl) (callorder.Template, error) {
	// An empty steps list compiles to the empty template, which matches a
	// pattern that makes no calls.
	compiled := make(callorder.Template, 0, len(tmpl.Steps))
	for j, step := range tmpl.Steps {
		action := c.actionsByName[step.Action]
		if action == nil {
			return nil, fmt.Errorf("steps[%d]: unknown action %q", j, step.Action)
		}
		allowed := make([]*callorder.Outcome, 0, len(step.Outcomes))
		for _, name := range step.Outcomes {
			outcome := c.outcomesByName[step.Action][name]
			if outcome == nil {
				return nil, fmt.Errorf("steps[%d]: action %q has no outcome %q", j, step.Action, name)
			}
			allowed = append(allowed, outcome)
		}
		compiled = append(compiled, callorder.Expect(action, allowed...))
	}
	return compiled, nil
}

// buildOutcome converts an outcome declaration into a callorder outcome.
func buildOutcome(o OutcomeDecl) *callorder.Outcome {
	switch o.Effect {
	case EffectFails:
		return callorder.Fails(o.Name, errors.New(o.Error))
	case EffectResolves:
		return callorder.Resolves(o.Name, o.Value)
	case EffectRejects:
		return callorder.Rejects(o.Name, errors.New(o.Error))
	default:
		// Validation guarantees the effect is known; returns is the
		// remaining case.
		return callorder.Returns(o.Name, o.Value)
	}
}
