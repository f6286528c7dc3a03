package rules

import "github.com/highrow623/pseudoregalia-archipelago/loadout"

// StateEnv wraps a player's inventory and exposes helpers callable from
// condition expressions.
type StateEnv struct {
	Inventory loadout.Inventory
}

func (e StateEnv) Count(item string) int {
	if e.Inventory == nil {
		return 0
	}
	return e.Inventory.Count(item)
}

func (e StateEnv) Has(item string) bool {
	return e.Count(item) > 0
}

func (e StateEnv) HasAll(items ...string) bool {
	for _, item := range items {
		if !e.Has(item) {
			return false
		}
	}
	return true
}

func (e StateEnv) HasAny(items ...string) bool {
	for _, item := range items {
		if e.Has(item) {
			return true
		}
	}
	return false
}
