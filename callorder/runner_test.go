package callorder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: action a may succeed or fail, action b always succeeds.
// The pattern calls a, then calls b only if a did not fail.
func abFixture(t *testing.T) (a, b *Action, aOK, aFail, bOK *Outcome, pattern Pattern) {
	t.Helper()

	aOK = Returns("ok", 1)
	aFail = Fails("fail", errors.New("a failed"))
	bOK = Returns("ok", 2)

	a = MustAction("a", aOK, aFail)
	b = MustAction("b", bOK)

	pattern = func(actions ...ActionFunc) (any, error) {
		if _, err := actions[0](); err != nil {
			return nil, err
		}
		return actions[1]()
	}
	return a, b, aOK, aFail, bOK, pattern
}

func TestVerify_ShortCircuitNotWhitelisted(t *testing.T) {
	a, b, aOK, _, _, pattern := abFixture(t)

	// Only the full two-call sequence is whitelisted. The a=fail scenario
	// observes just [a], which matches no template.
	valid := []Template{
		{Expect(a, aOK), Expect(b)},
	}

	report, err := Verify(context.Background(), []*Action{a, b}, valid, pattern)
	require.NoError(t, err)

	assert.False(t, report.Passed)
	assert.Equal(t, 2, report.Scenarios)
	require.Len(t, report.Failures, 1)

	failure := report.Failures[0]
	assert.Equal(t, 1, failure.Index)
	require.Len(t, failure.Observed, 1)
	assert.Equal(t, "a", failure.Observed[0].Action.Name())
	assert.Contains(t, failure.Description(), "a -> fail")
	assert.Contains(t, failure.Description(), "observed calls: a")
}

func TestVerify_ShortCircuitWhitelisted(t *testing.T) {
	a, b, aOK, aFail, _, pattern := abFixture(t)

	valid := []Template{
		{Expect(a, aOK), Expect(b)},
		{Expect(a, aFail)},
	}

	report, err := Verify(context.Background(), []*Action{a, b}, valid, pattern)
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Empty(t, report.Failures)
}

func TestVerify_ZeroActions(t *testing.T) {
	pattern := func(actions ...ActionFunc) (any, error) {
		return nil, nil
	}

	report, err := Verify(context.Background(), nil, []Template{{}}, pattern)
	require.NoError(t, err)

	// One trivial scenario; its empty sequence matches the empty template.
	assert.Equal(t, 1, report.Scenarios)
	assert.True(t, report.Passed)
}

func TestVerify_SynchronousFailureStillValidated(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		return nil, errors.New("refused to start")
	}

	// The pattern never calls anything, so the empty template matches.
	report, err := Verify(context.Background(), []*Action{a}, []Template{{}}, pattern)
	require.NoError(t, err)
	assert.True(t, report.Passed)

	// Without the empty template the same run fails with an empty sequence.
	report, err = Verify(context.Background(), []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Description(), "observed calls: (none)")
}

func TestVerify_PanicTreatedAsSynchronousFailure(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		panic("pattern blew up")
	}

	report, err := Verify(context.Background(), []*Action{a}, []Template{{}}, pattern)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestVerify_PartialSequenceBeforePanic(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		_, _ = actions[0]()
		panic("after the call")
	}

	// The call made before the panic is still recorded and validated.
	report, err := Verify(context.Background(), []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestVerify_AwaitsDeferredCompletion(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		d := NewDeferred()
		go func() {
			_, _ = actions[0]()
			d.Resolve(nil)
		}()
		return d, nil
	}

	// The call happens on a goroutine after the pattern returns; the runner
	// must not validate until the deferred settles.
	report, err := Verify(context.Background(), []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestVerify_RejectedCompletionDoesNotFailScenario(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		_, _ = actions[0]()
		return Rejected(errors.New("async failure")), nil
	}

	report, err := Verify(context.Background(), []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestVerify_DeferredOutcomesDriveBranching(t *testing.T) {
	connectOK := Resolves("ok", "conn")
	connectFail := Rejects("fail", errors.New("no route"))
	closeOK := Returns("ok", nil)

	connect := MustAction("connect", connectOK, connectFail)
	cleanup := MustAction("close", closeOK)

	// Close only after a successful connect.
	pattern := func(actions ...ActionFunc) (any, error) {
		result := NewDeferred()
		v, err := actions[0]()
		if err != nil {
			return nil, err
		}
		d := v.(*Deferred)
		go func() {
			if _, err := d.Await(context.Background()); err != nil {
				result.Reject(err)
				return
			}
			_, _ = actions[1]()
			result.Resolve(nil)
		}()
		return result, nil
	}

	valid := []Template{
		{Expect(connect, connectOK), Expect(cleanup)},
		{Expect(connect, connectFail)},
	}

	report, err := Verify(context.Background(), []*Action{connect, cleanup}, valid, pattern)
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestVerify_RepeatedCallsRejected(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		_, _ = actions[0]()
		_, _ = actions[0]()
		return nil, nil
	}

	report, err := Verify(context.Background(), []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Description(), "observed calls: a, a")
}

func TestVerify_EveryFailingScenarioReported(t *testing.T) {
	aOK := Returns("ok", nil)
	aFail := Fails("fail", errors.New("a failed"))
	a := MustAction("a", aOK, aFail)

	// Calls nothing, and the empty sequence is never whitelisted.
	pattern := func(actions ...ActionFunc) (any, error) {
		return nil, nil
	}

	report, err := Verify(context.Background(), []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.NoError(t, err)
	assert.False(t, report.Passed)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, 0, report.Failures[0].Index)
	assert.Equal(t, 1, report.Failures[1].Index)
}

func TestVerify_Idempotent(t *testing.T) {
	a, b, aOK, _, _, pattern := abFixture(t)
	valid := []Template{{Expect(a, aOK), Expect(b)}}

	runner := NewRunner(WithTokenGenerator(NewFixedTokenGenerator("run-fixed")))

	first, err := runner.Verify(context.Background(), []*Action{a, b}, valid, pattern)
	require.NoError(t, err)
	second, err := runner.Verify(context.Background(), []*Action{a, b}, valid, pattern)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVerify_DuplicateActionNames(t *testing.T) {
	first := MustAction("a", Returns("ok", nil))
	second := MustAction("a", Returns("ok", nil))

	pattern := func(actions ...ActionFunc) (any, error) { return nil, nil }

	_, err := Verify(context.Background(), []*Action{first, second}, nil, pattern)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrCodeDuplicateAction, verr.Code)
	assert.Equal(t, "a", verr.Action)
}

func TestVerify_NilAction(t *testing.T) {
	pattern := func(actions ...ActionFunc) (any, error) { return nil, nil }

	_, err := Verify(context.Background(), []*Action{nil}, nil, pattern)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrCodeNilAction, verr.Code)
}

func TestVerify_CancelledContextAbortsRun(t *testing.T) {
	aOK := Returns("ok", nil)
	a := MustAction("a", aOK)

	pattern := func(actions ...ActionFunc) (any, error) {
		_, _ = actions[0]()
		return NewDeferred(), nil // never settles
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Verify(ctx, []*Action{a}, []Template{{Expect(a)}}, pattern)
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	assert.ErrorIs(t, err, context.Canceled)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Scenario)
}

func TestVerify_ReportCarriesRunToken(t *testing.T) {
	report, err := NewRunner(WithTokenGenerator(NewFixedTokenGenerator("run-42"))).
		Verify(context.Background(), nil, []Template{{}}, func(actions ...ActionFunc) (any, error) {
			return nil, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "run-42", report.RunToken)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	first := gen.Generate()
	second := gen.Generate()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestFixedTokenGenerator_DefaultToken(t *testing.T) {
	gen := NewFixedTokenGenerator("")
	assert.Equal(t, "test-run-default", gen.Generate())
	assert.Equal(t, "test-run-default", gen.Generate())
}
