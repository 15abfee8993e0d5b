package callorder

import "sync"

// ActionFunc is the tracked callable handed to the pattern under test for
// one action.
//
// Invoking it records the call in the scenario's sequence and then evaluates
// the outcome chosen for this scenario, returning exactly what the outcome
// produces: a value, an error, or an Awaiter for asynchronous effects.
type ActionFunc func() (any, error)

// CallRecord notes one invocation of a tracked action during a scenario.
type CallRecord struct {
	// Action is the action that was invoked.
	Action *Action

	// Outcome is the outcome chosen for the action in this scenario.
	Outcome *Outcome

	// Seq is the per-scenario logical sequence number of the call.
	// The first call in a scenario has Seq 1.
	Seq int64
}

// sequenceLog accumulates call records for a single scenario.
//
// One log is allocated per scenario and shared by that scenario's tracked
// callables; it never crosses scenario boundaries.
//
// Thread-safety: append and snapshot are mutex-guarded. The pattern under
// test may invoke actions from goroutines it spawns, so the log cannot
// assume single-threaded access even though scenarios themselves run one
// at a time.
type sequenceLog struct {
	mu      sync.Mutex
	seq     int64
	records []CallRecord
}

func newSequenceLog() *sequenceLog {
	return &sequenceLog{}
}

// append records a call. The record is written unconditionally, before the
// outcome is evaluated, so attempted calls are captured even when the
// outcome subsequently fails.
func (l *sequenceLog) append(action *Action, outcome *Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.records = append(l.records, CallRecord{
		Action:  action,
		Outcome: outcome,
		Seq:     l.seq,
	})
}

// snapshot returns a copy of the records accumulated so far, in call order.
func (l *sequenceLog) snapshot() []CallRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := make([]CallRecord, len(l.records))
	copy(copied, l.records)
	return copied
}

// trackedCalls builds one ActionFunc per choice, in permutation order, all
// closed over the same freshly-allocated sequence log.
func trackedCalls(perm []Choice, log *sequenceLog) []ActionFunc {
	calls := make([]ActionFunc, len(perm))
	for i, choice := range perm {
		choice := choice
		calls[i] = func() (any, error) {
			log.append(choice.Action, choice.Outcome)
			return choice.Outcome.produce()
		}
	}
	return calls
}
