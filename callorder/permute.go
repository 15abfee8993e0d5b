package callorder

// Choice pairs an action with the outcome selected for it in one scenario.
type Choice struct {
	Action  *Action
	Outcome *Outcome
}

// Permutations enumerates every combination of one outcome choice per
// action: the full Cartesian product of the actions' outcome sets.
//
// Within each permutation the actions appear in declaration order.
// Permutations are visited in natural nested order, varying the last
// action's outcome fastest. No entry is reordered or de-duplicated.
//
// Degenerate cases are defined, not errors: zero actions yield exactly one
// empty permutation, and any action with zero outcomes collapses the whole
// product to zero permutations.
func Permutations(actions []*Action) [][]Choice {
	if len(actions) == 0 {
		return [][]Choice{{}}
	}

	head := actions[0]
	tails := Permutations(actions[1:])

	out := make([][]Choice, 0, len(head.outcomes)*len(tails))
	for _, outcome := range head.outcomes {
		for _, tail := range tails {
			perm := make([]Choice, 0, len(actions))
			perm = append(perm, Choice{Action: head, Outcome: outcome})
			perm = append(perm, tail...)
			out = append(out, perm)
		}
	}
	return out
}
