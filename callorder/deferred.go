package callorder

import (
	"context"
	"errors"
	"sync"
)

// Awaiter is a value the scenario runner suspends on after invoking the
// pattern under test.
//
// Await blocks until the value settles and returns the settlement as a
// (value, error) pair. The runner discards both: whether the pattern's
// returned completion succeeds or fails is irrelevant to scheduling and to
// sequence validation. Only the recorded call order decides pass/fail.
//
// A pattern that returns a value not implementing Awaiter is treated as
// settling immediately.
type Awaiter interface {
	Await(ctx context.Context) (any, error)
}

// Deferred is a single-transition completion: it starts pending and settles
// exactly once, either resolved with a value or rejected with an error.
//
// Thread-safety: all methods are safe for concurrent use. Settling is
// guarded by sync.Once, so a Resolve racing a Reject results in exactly one
// winner and the loser is a no-op.
type Deferred struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

// NewDeferred creates a pending Deferred.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolved creates a Deferred that has already settled with a value.
func Resolved(value any) *Deferred {
	d := NewDeferred()
	d.Resolve(value)
	return d
}

// Rejected creates a Deferred that has already settled with an error.
func Rejected(err error) *Deferred {
	d := NewDeferred()
	d.Reject(err)
	return d
}

// Resolve settles the Deferred with a value.
// No-op if the Deferred has already settled.
func (d *Deferred) Resolve(value any) {
	d.once.Do(func() {
		d.value = value
		close(d.done)
	})
}

// Reject settles the Deferred with an error.
// A nil error is replaced with a generic one so a rejected Deferred is
// always distinguishable from a resolved one.
// No-op if the Deferred has already settled.
func (d *Deferred) Reject(err error) {
	d.once.Do(func() {
		if err == nil {
			err = errors.New("deferred rejected")
		}
		d.err = err
		close(d.done)
	})
}

// Await implements Awaiter. It blocks until the Deferred settles or the
// context is cancelled.
//
// There is no implicit timeout: a Deferred that never settles blocks
// forever unless the caller bounds ctx.
func (d *Deferred) Await(ctx context.Context) (any, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
