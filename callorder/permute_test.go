package callorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutations_Counts(t *testing.T) {
	a := MustAction("a", Returns("ok", nil), Fails("fail", errors.New("a failed")))
	b := MustAction("b", Returns("ok", nil))
	c := MustAction("c", Returns("one", 1), Returns("two", 2), Returns("three", 3))

	tests := []struct {
		name    string
		actions []*Action
		want    int
	}{
		{"2x1", []*Action{a, b}, 2},
		{"2x3", []*Action{a, c}, 6},
		{"2x1x3", []*Action{a, b, c}, 6},
		{"single", []*Action{b}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perms := Permutations(tt.actions)
			require.Len(t, perms, tt.want)
			for _, perm := range perms {
				require.Len(t, perm, len(tt.actions))
				// Action order inside each permutation matches declaration order.
				for i, choice := range perm {
					assert.Same(t, tt.actions[i], choice.Action)
				}
			}
		})
	}
}

func TestPermutations_NestedOrder(t *testing.T) {
	aOK := Returns("ok", nil)
	aFail := Fails("fail", errors.New("a failed"))
	bOK := Returns("ok", nil)
	bSlow := Resolves("slow", nil)

	a := MustAction("a", aOK, aFail)
	b := MustAction("b", bOK, bSlow)

	perms := Permutations([]*Action{a, b})
	require.Len(t, perms, 4)

	// The last action's outcome varies fastest.
	assert.Same(t, aOK, perms[0][0].Outcome)
	assert.Same(t, bOK, perms[0][1].Outcome)
	assert.Same(t, aOK, perms[1][0].Outcome)
	assert.Same(t, bSlow, perms[1][1].Outcome)
	assert.Same(t, aFail, perms[2][0].Outcome)
	assert.Same(t, bOK, perms[2][1].Outcome)
	assert.Same(t, aFail, perms[3][0].Outcome)
	assert.Same(t, bSlow, perms[3][1].Outcome)
}

func TestPermutations_ZeroActions(t *testing.T) {
	perms := Permutations(nil)
	require.Len(t, perms, 1)
	assert.Empty(t, perms[0])
}

func TestPermutations_ZeroOutcomesCollapsesProduct(t *testing.T) {
	// NewAction rejects zero outcomes, but the generator still defines the
	// degenerate case for hand-built values: an empty product.
	a := MustAction("a", Returns("ok", nil))
	empty := &Action{name: "empty"}

	assert.Empty(t, Permutations([]*Action{empty}))
	assert.Empty(t, Permutations([]*Action{a, empty}))
	assert.Empty(t, Permutations([]*Action{empty, a}))
}
