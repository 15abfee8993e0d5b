package callorder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Pattern is the pattern under test: an opaque callable that receives one
// tracked callable per action, in declaration order.
//
// It may invoke zero or more of them, in any order, any number of times. It
// may return a plain value, return an Awaiter for asynchronous completion,
// or fail by returning an error (or panicking). How it fails never decides
// pass/fail; only the recorded call order does.
type Pattern func(actions ...ActionFunc) (any, error)

// TokenGenerator produces run tokens for log and report correlation.
// Implemented by UUIDv7Generator (production) and FixedTokenGenerator (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokenGenerator returns the same run token every time.
//
// This enables deterministic golden comparison: the same inputs with the
// same FixedTokenGenerator produce byte-identical reports.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a fixed run token generator.
// If token is empty, Generate returns "test-run-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed run token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}

// Runner drives verification runs.
//
// Scenarios are processed strictly one after another in enumeration order;
// the verdict for scenario k is only computed after scenario k's completion
// contract has fully settled. No state crosses scenario boundaries except
// the read-only action and template inputs.
type Runner struct {
	logger *slog.Logger
	tokens TokenGenerator
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger. The default discards all output.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTokenGenerator sets the run token generator.
// The default is UUIDv7Generator; tests use NewFixedTokenGenerator for
// deterministic reports.
func WithTokenGenerator(tokens TokenGenerator) RunnerOption {
	return func(r *Runner) {
		r.tokens = tokens
	}
}

// NewRunner creates a Runner with the given options applied over defaults.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Verify runs the pattern once per outcome permutation with a default Runner.
func Verify(ctx context.Context, actions []*Action, valid []Template, pattern Pattern) (*Report, error) {
	return NewRunner().Verify(ctx, actions, valid, pattern)
}

// Verify enumerates every combination of action outcomes, drives the
// pattern under test once per combination, and validates each recorded call
// sequence against the valid-sequence templates.
//
// The returned Report aggregates every scenario; Verify never returns a
// partial result. Errors are engine faults only (invalid declarations,
// cancelled context): a pattern that misbehaves produces report failures,
// not errors.
func (r *Runner) Verify(ctx context.Context, actions []*Action, valid []Template, pattern Pattern) (*Report, error) {
	if err := validateActions(actions); err != nil {
		return nil, err
	}

	perms := Permutations(actions)
	report := &Report{
		RunToken:  r.tokens.Generate(),
		Scenarios: len(perms),
		Passed:    true,
	}

	r.logger.Info("verification starting",
		"run", report.RunToken,
		"actions", len(actions),
		"templates", len(valid),
		"scenarios", len(perms),
	)

	for i, perm := range perms {
		observed, err := r.runScenario(ctx, perm, pattern)
		if err != nil {
			return nil, newAbortError(i, err)
		}

		if matchesAny(valid, observed) {
			r.logger.Debug("scenario valid",
				"run", report.RunToken,
				"scenario", i,
				"observed", FormatObserved(observed),
			)
			continue
		}

		report.Passed = false
		report.Failures = append(report.Failures, ScenarioFailure{
			Index:    i,
			Choices:  perm,
			Observed: observed,
		})
		r.logger.Debug("scenario invalid",
			"run", report.RunToken,
			"scenario", i,
			"observed", FormatObserved(observed),
		)
	}

	r.logger.Info("verification complete",
		"run", report.RunToken,
		"passed", report.Passed,
		"failures", len(report.Failures),
	)

	return report, nil
}

// runScenario executes the pattern under test for one permutation and
// returns the sequence of calls it made.
//
// A synchronous failure (error return or panic) is discarded: the partial
// sequence recorded before the failure is still subject to validation. If
// the pattern returns an Awaiter, the scenario suspends until it settles;
// settlement with an error is discarded the same way. The only error this
// returns is context cancellation while suspended.
func (r *Runner) runScenario(ctx context.Context, perm []Choice, pattern Pattern) ([]CallRecord, error) {
	log := newSequenceLog()
	calls := trackedCalls(perm, log)

	result, err := invokePattern(pattern, calls)
	if err != nil {
		r.logger.Debug("pattern failed synchronously", "error", err)
		return log.snapshot(), nil
	}

	if awaiter, ok := result.(Awaiter); ok {
		if _, settleErr := awaiter.Await(ctx); settleErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Debug("pattern settled with failure", "error", settleErr)
		}
	}

	return log.snapshot(), nil
}

// invokePattern calls the pattern, converting a panic into an error so a
// crashing pattern takes the same discarded-failure path as one that
// returns an error.
func invokePattern(pattern Pattern, calls []ActionFunc) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pattern panicked: %v", p)
		}
	}()
	return pattern(calls...)
}

// validateActions rejects declarations that would make validation
// ambiguous or undefined.
func validateActions(actions []*Action) error {
	seen := make(map[string]bool, len(actions))
	for i, action := range actions {
		if action == nil {
			return newActionError(ErrCodeNilAction, "",
				fmt.Sprintf("action %d is nil", i))
		}
		if seen[action.Name()] {
			return newActionError(ErrCodeDuplicateAction, action.Name(),
				"action name declared more than once")
		}
		seen[action.Name()] = true
	}
	return nil
}
