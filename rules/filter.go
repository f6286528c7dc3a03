package rules

import (
	"slices"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"github.com/highrow623/pseudoregalia-archipelago/tricks"
)

// IDSet is a set of trick ids.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Selection is everything that decides which tricks are in a player's logic.
type Selection struct {
	Tags    tags.Set // resolved closure
	Include IDSet    // forced into logic
	Exclude IDSet    // forced out of logic
}

// Active reports whether t is in logic under sel. Default tricks can never
// be excluded, and an include override beats an exclude.
func Active(t tricks.Trick, sel Selection) bool {
	if t.IsDefault() {
		return true
	}
	if sel.Include.Has(t.ID) {
		return true
	}
	return !sel.Exclude.Has(t.ID) && sel.Tags.Contains(t.Tags)
}

// Filter encodes the active tricks of every target. Each target's
// requirements are deduplicated and sorted.
func Filter(byTarget map[string][]tricks.Trick, sel Selection) map[string][]loadout.Bits {
	out := make(map[string][]loadout.Bits, len(byTarget))
	for target, list := range byTarget {
		reqs := make([]loadout.Bits, 0, len(list))
		for _, t := range list {
			if !Active(t, sel) {
				continue
			}
			bits := loadout.Encode(t.Loadout)
			if !slices.Contains(reqs, bits) {
				reqs = append(reqs, bits)
			}
		}
		slices.Sort(reqs)
		out[target] = reqs
	}
	return out
}
