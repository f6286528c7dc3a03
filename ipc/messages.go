package ipc

import "github.com/highrow623/pseudoregalia-archipelago/rules"

// Message types understood by the sidecar. The host sends hello once, then
// an inventory whenever the player's items change.
const (
	TypeHello        = "hello"
	TypeInventory    = "inventory"
	TypeReachability = "reachability"
	TypeAck          = "ack"
	TypeError        = "error"
)

type HelloMessage struct {
	Options rules.PlayerOptions `json:"options"`
}

type InventoryMessage struct {
	Items map[string]int `json:"items"`
}

// ReachabilityMessage answers an inventory. NewlyReachable lists targets that
// were closed under the previous inventory and are open now.
type ReachabilityMessage struct {
	Entrances      []string `json:"entrances"`
	Locations      []string `json:"locations"`
	Goal           bool     `json:"goal"`
	NewlyReachable []string `json:"newly_reachable,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}
