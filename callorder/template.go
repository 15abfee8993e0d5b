package callorder

// Step constrains one position of a valid sequence: which action must occur
// there and, optionally, which of its outcomes are permitted.
type Step struct {
	action  *Action
	allowed []*Outcome // empty means any outcome is permitted
}

// Expect builds a template step. With no outcomes listed the step accepts
// any outcome of the action; otherwise only the listed outcomes match.
//
// Allowed outcomes are matched by pointer identity against the outcome
// recorded for the call, never by produced value.
func Expect(action *Action, allowed ...*Outcome) Step {
	copied := make([]*Outcome, len(allowed))
	copy(copied, allowed)
	return Step{action: action, allowed: copied}
}

// Action returns the action constrained by this step.
func (s Step) Action() *Action {
	return s.action
}

// AllowedOutcomes returns the permitted outcomes, or an empty slice when the
// step is unconstrained. The returned slice is a copy.
func (s Step) AllowedOutcomes() []*Outcome {
	copied := make([]*Outcome, len(s.allowed))
	copy(copied, s.allowed)
	return copied
}

// Template describes one acceptable call sequence, step by step.
//
// Matching is strictly positional and exact-length: no reordering, no
// skipping, no partial-prefix acceptance, and no optional or repeated steps.
// A recorded sequence is valid overall if it matches at least one template.
type Template []Step

// Matches reports whether the recorded sequence structurally matches this
// template: equal lengths, the same action name at every position, and the
// recorded outcome within the step's allowed set (or the step declares no
// outcome constraints).
func (t Template) Matches(seq []CallRecord) bool {
	if len(t) != len(seq) {
		return false
	}
	for i, step := range t {
		record := seq[i]
		if record.Action.Name() != step.action.Name() {
			return false
		}
		if len(step.allowed) == 0 {
			continue
		}
		if !containsOutcome(step.allowed, record.Outcome) {
			return false
		}
	}
	return true
}

// containsOutcome checks outcome membership by pointer identity.
func containsOutcome(allowed []*Outcome, outcome *Outcome) bool {
	for _, o := range allowed {
		if o == outcome {
			return true
		}
	}
	return false
}

// matchesAny reports whether the sequence matches at least one template.
// Zero templates means nothing is valid.
func matchesAny(templates []Template, seq []CallRecord) bool {
	for _, t := range templates {
		if t.Matches(seq) {
			return true
		}
	}
	return false
}
