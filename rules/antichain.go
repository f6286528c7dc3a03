package rules

import (
	"slices"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
)

// Dominates reports whether a is at least as permissive as b: every bit a
// requires is also required by b, so any state meeting b meets a.
func Dominates(a, b loadout.Bits) bool {
	return a&b == a
}

// Insert adds v to the antichain set. If a member already dominates v the set
// is returned unchanged; otherwise members dominated by v are dropped.
func Insert(set []loadout.Bits, v loadout.Bits) []loadout.Bits {
	for _, m := range set {
		if Dominates(m, v) {
			return set
		}
	}
	out := make([]loadout.Bits, 0, len(set)+1)
	for _, m := range set {
		if !Dominates(v, m) {
			out = append(out, m)
		}
	}
	return append(out, v)
}

// Reduce folds reqs into the minimal set of mutually incomparable
// requirements. The result is satisfied by exactly the same states as reqs.
// An empty requirement absorbs everything else and yields {0}.
func Reduce(reqs []loadout.Bits) []loadout.Bits {
	var set []loadout.Bits
	for _, v := range reqs {
		if v == 0 {
			return []loadout.Bits{0}
		}
		set = Insert(set, v)
	}
	slices.Sort(set)
	return set
}
