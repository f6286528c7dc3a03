package rules

import (
	"slices"
	"strings"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
)

// Predicate is what the host attaches to an entrance or location: it decides
// whether a player's current inventory satisfies the gate.
type Predicate interface {
	Evaluate(inv loadout.Inventory) bool
}

// Rule is the compiled logic for one rule target. Any one requirement
// suffices. A Rule is an immutable value and safe for concurrent use.
type Rule struct {
	target            string
	reqs              []loadout.Bits // reduced antichain, ascending
	requiredSmallKeys int
	never             bool
}

// Build turns a minimized requirement set into a Rule. requiredSmallKeys is
// the player's threshold for the small_keys capability.
func Build(target string, reqs []loadout.Bits, requiredSmallKeys int) Rule {
	owned := slices.Clone(reqs)
	slices.Sort(owned)
	return Rule{target: target, reqs: owned, requiredSmallKeys: requiredSmallKeys}
}

// Never returns a rule no state satisfies. It gates a target whose catalog
// tricks were all filtered out, which is different from a target that has no
// tricks at all.
func Never(target string) Rule {
	return Rule{target: target, never: true}
}

func (r Rule) Target() string { return r.target }

// Requirements returns a copy of the alternatives.
func (r Rule) Requirements() []loadout.Bits { return slices.Clone(r.reqs) }

func (r Rule) RequiredSmallKeys() int { return r.requiredSmallKeys }

// Unconditional reports whether the rule holds for every state: it has no
// tricks at all, or one of its tricks needs nothing.
func (r Rule) Unconditional() bool {
	return !r.never && (len(r.reqs) == 0 || r.reqs[0] == 0)
}

// Impossible reports whether the rule was built by Never.
func (r Rule) Impossible() bool { return r.never }

// Satisfied reports whether current meets at least one requirement.
func (r Rule) Satisfied(current loadout.Bits) bool {
	if r.never {
		return false
	}
	if len(r.reqs) == 0 {
		return true
	}
	for _, req := range r.reqs {
		if req&current == req {
			return true
		}
	}
	return false
}

// Evaluate derives the player's loadout from inv and checks it. The loadout
// is rebuilt on every call because inv changes while solving.
func (r Rule) Evaluate(inv loadout.Inventory) bool {
	if r.never {
		return false
	}
	if len(r.reqs) == 0 {
		return true
	}
	current := loadout.Encode(loadout.FromInventory(inv, r.requiredSmallKeys))
	return r.Satisfied(current)
}

// String lists the alternatives, e.g. "[solar wind] | [6 clings, 2 kicks]".
func (r Rule) String() string {
	if r.never {
		return "never"
	}
	if len(r.reqs) == 0 {
		return "always"
	}
	parts := make([]string, len(r.reqs))
	for i, req := range r.reqs {
		parts[i] = loadout.Summary(req)
	}
	return strings.Join(parts, " | ")
}
