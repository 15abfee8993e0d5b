package callorder

import "fmt"

// Outcome is one declared effect an action may produce when invoked.
//
// The producer function runs every time the pattern under test invokes the
// action in a scenario where this outcome was chosen. It may return a plain
// value, return an error, or return an Awaiter (such as *Deferred) for
// asynchronous effects.
//
// Outcomes are compared by pointer identity throughout the verifier: two
// outcomes that happen to produce equal values are still distinct. Declare
// each outcome once and reuse the pointer in templates.
type Outcome struct {
	name string
	do   func() (any, error)
}

// NewOutcome creates an outcome with an arbitrary producer function.
//
// The name is used only in diagnostics (scenario descriptions and failure
// reports). The producer must be non-nil.
func NewOutcome(name string, do func() (any, error)) *Outcome {
	return &Outcome{name: name, do: do}
}

// Returns creates an outcome that produces a plain value.
func Returns(name string, value any) *Outcome {
	return NewOutcome(name, func() (any, error) {
		return value, nil
	})
}

// Fails creates an outcome that produces an error.
func Fails(name string, err error) *Outcome {
	return NewOutcome(name, func() (any, error) {
		return nil, err
	})
}

// Resolves creates an outcome that produces an already-resolved Deferred.
func Resolves(name string, value any) *Outcome {
	return NewOutcome(name, func() (any, error) {
		return Resolved(value), nil
	})
}

// Rejects creates an outcome that produces an already-rejected Deferred.
func Rejects(name string, err error) *Outcome {
	return NewOutcome(name, func() (any, error) {
		return Rejected(err), nil
	})
}

// Name returns the outcome's diagnostic name.
func (o *Outcome) Name() string {
	return o.name
}

// produce evaluates the outcome's effect.
func (o *Outcome) produce() (any, error) {
	return o.do()
}

// Action declares one named point of extension the pattern under test may
// invoke, with its finite set of possible outcomes.
//
// Actions are immutable after construction and shared read-only across all
// scenarios of a run. The action name is the identity key for template
// matching and must be unique within one Verify call.
type Action struct {
	name     string
	outcomes []*Outcome
}

// NewAction creates an action from a name and its possible outcomes.
//
// At least one outcome is required; an action with nothing it can do has no
// scenarios to enumerate. The outcomes slice is copied to prevent external
// mutation after construction.
func NewAction(name string, outcomes ...*Outcome) (*Action, error) {
	if len(outcomes) == 0 {
		return nil, newActionError(ErrCodeNoOutcomes, name, "action declares no outcomes")
	}
	for i, o := range outcomes {
		if o == nil || o.do == nil {
			return nil, newActionError(ErrCodeNilOutcome, name,
				fmt.Sprintf("outcome %d is nil or has no producer", i))
		}
	}

	copied := make([]*Outcome, len(outcomes))
	copy(copied, outcomes)

	return &Action{name: name, outcomes: copied}, nil
}

// MustAction is like NewAction but panics on invalid declarations.
// Intended for fixture declaration in tests, where the declaration is static.
func MustAction(name string, outcomes ...*Outcome) *Action {
	a, err := NewAction(name, outcomes...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the action's identity name.
func (a *Action) Name() string {
	return a.name
}

// Outcomes returns the declared outcomes in declaration order.
// The returned slice is a copy; mutating it does not affect the action.
func (a *Action) Outcomes() []*Outcome {
	copied := make([]*Outcome, len(a.outcomes))
	copy(copied, a.outcomes)
	return copied
}
