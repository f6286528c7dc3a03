package model

import "sort"

// Inventory is one player's collected items, as reported by the host.
// Counts never decrease over a game.
type Inventory struct {
	Player int            `json:"player"`
	Items  map[string]int `json:"items"`
}

// NewInventory returns an inventory holding one of each item.
func NewInventory(player int, items ...string) Inventory {
	inv := Inventory{Player: player, Items: make(map[string]int, len(items))}
	for _, item := range items {
		inv.Items[item]++
	}
	return inv
}

// Count returns how many of item the player holds.
func (inv Inventory) Count(item string) int {
	return inv.Items[item]
}

// Has reports whether the player holds at least one item.
func (inv Inventory) Has(item string) bool {
	return inv.Count(item) > 0
}

// With returns a copy holding n more of item.
func (inv Inventory) With(item string, n int) Inventory {
	out := Inventory{Player: inv.Player, Items: make(map[string]int, len(inv.Items)+1)}
	for k, v := range inv.Items {
		out.Items[k] = v
	}
	out.Items[item] += n
	return out
}

// Names returns the held item names in lexical order.
func (inv Inventory) Names() []string {
	names := make([]string, 0, len(inv.Items))
	for k, v := range inv.Items {
		if v > 0 {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
