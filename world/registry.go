package world

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/highrow623/pseudoregalia-archipelago/rules"
)

// ErrUnknownRuleTarget is returned when a rule names an entrance or location
// the host does not have.
var ErrUnknownRuleTarget = errors.New("unknown rule target")

// Slot is a gate in the host's world that accepts a rule.
type Slot interface {
	SetRule(p rules.Predicate)
}

// Registry is the host's view of its world: slots looked up by name plus
// the player's completion condition.
type Registry interface {
	Entrance(name string) (Slot, error)
	Location(name string) (Slot, error)
	SetCompletion(p rules.Predicate)
}

// unknownTarget builds an ErrUnknownRuleTarget error for name, suggesting
// the closest of known when one is near enough to be a likely typo.
func unknownTarget(kind, name string, known []string) error {
	if s := suggest(name, known); s != "" {
		return fmt.Errorf("%w: %s %q (did you mean %q?)", ErrUnknownRuleTarget, kind, name, s)
	}
	return fmt.Errorf("%w: %s %q", ErrUnknownRuleTarget, kind, name)
}

func suggest(name string, known []string) string {
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(name, k)
		if bestDist < 0 || d < bestDist || (d == bestDist && k < best) {
			best, bestDist = k, d
		}
	}
	// More than a third of the name changed is not a typo.
	if bestDist < 0 || bestDist*3 > len(name) {
		return ""
	}
	return best
}
