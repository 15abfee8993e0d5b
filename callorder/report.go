package callorder

import (
	"fmt"
	"strings"
)

// Report is the aggregate verdict of one verification run.
//
// Exactly one report is produced per Verify call, after every scenario has
// run to completion. Failures appear in scenario enumeration order.
type Report struct {
	// RunToken correlates this run in logs and diagnostics.
	RunToken string

	// Scenarios is the number of outcome permutations enumerated.
	Scenarios int

	// Passed is true when every scenario's recorded sequence matched at
	// least one valid-sequence template.
	Passed bool

	// Failures describes each scenario whose recorded sequence matched no
	// template. Empty when Passed is true.
	Failures []ScenarioFailure
}

// ScenarioFailure describes one scenario that produced an invalid call order.
type ScenarioFailure struct {
	// Index is the scenario's position in enumeration order, starting at 0.
	Index int

	// Choices is the outcome chosen per action for this scenario, in
	// action declaration order.
	Choices []Choice

	// Observed is the sequence of calls the pattern actually made.
	Observed []CallRecord
}

// Description renders the failure as one human-readable block: the chosen
// outcome per action, newline-separated, followed by the observed call
// order, comma-separated.
func (f ScenarioFailure) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %d: observed call order matches no valid sequence\n", f.Index)
	for _, choice := range f.Choices {
		fmt.Fprintf(&b, "  %s -> %s\n", choice.Action.Name(), choice.Outcome.Name())
	}
	fmt.Fprintf(&b, "observed calls: %s", FormatObserved(f.Observed))
	return b.String()
}

// Description joins every failure block with newlines. Empty for a passing
// report.
func (r *Report) Description() string {
	if len(r.Failures) == 0 {
		return ""
	}
	blocks := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		blocks[i] = f.Description()
	}
	return strings.Join(blocks, "\n")
}

// FormatObserved renders a recorded sequence as comma-separated action
// names in call order, or "(none)" for an empty sequence.
func FormatObserved(records []CallRecord) string {
	if len(records) == 0 {
		return "(none)"
	}
	names := make([]string, len(records))
	for i, record := range records {
		names[i] = record.Action.Name()
	}
	return strings.Join(names, ", ")
}
