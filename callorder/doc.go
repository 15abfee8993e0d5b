// Package callorder verifies call-ordering contracts of asynchronous patterns.
//
// A pattern under test is an opaque callable that receives one tracked
// callable per declared action. Each action declares a finite set of named
// outcomes (return a value, fail, or hand back a deferred completion). The
// verifier enumerates every combination of outcomes, drives the pattern once
// per combination, records the exact order in which the pattern invoked its
// actions, and checks that order against a whitelist of valid sequence
// templates.
//
// # Declaring actions
//
//	begin := callorder.MustAction("begin",
//	    callorder.Returns("ok", 1),
//	    callorder.Fails("refused", errors.New("begin refused")),
//	)
//	commit := callorder.MustAction("commit",
//	    callorder.Returns("ok", nil),
//	)
//
// # Valid sequences
//
// A template is an ordered whitelist entry. Each step names the action that
// must occur at that position and, optionally, the outcomes permitted there.
// A step with no outcome constraints accepts any outcome. Matching is strictly
// positional: equal length, same action at every position, outcome within the
// allowed set (compared by identity, never by produced value).
//
//	valid := []callorder.Template{
//	    {callorder.Expect(begin, beginOK), callorder.Expect(commit)},
//	    {callorder.Expect(begin, beginRefused)},
//	}
//
// # Running
//
//	report, err := callorder.Verify(ctx, []*callorder.Action{begin, commit}, valid,
//	    func(actions ...callorder.ActionFunc) (any, error) {
//	        if _, err := actions[0](); err != nil {
//	            return nil, err
//	        }
//	        return actions[1]()
//	    })
//
// Scenarios run strictly one at a time in enumeration order. A pattern that
// fails synchronously is still validated against whatever partial sequence it
// recorded. A pattern that returns an Awaiter (such as *Deferred) suspends the
// run until it settles; whether it settles with a value or an error is
// irrelevant to scheduling and to validation.
//
// Engine faults (a cancelled context, invalid action declarations) surface on
// the error return of Verify, never inside the Report. A Report with
// Passed=false always describes sequence mismatches only.
package callorder
