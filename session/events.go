package session

import (
	"slices"

	"github.com/highrow623/pseudoregalia-archipelago/world"
)

// EventKind identifies what changed between two consecutive inventories.
type EventKind string

const (
	EventEntranceOpened    EventKind = "entrance_opened"
	EventLocationReachable EventKind = "location_reachable"
	EventGoalReachable     EventKind = "goal_reachable"
)

// Event is a target that opened since the previous inventory.
type Event struct {
	Kind   EventKind
	Target string
}

// detectEvents diffs two reachability snapshots. The first snapshot of a
// session has nothing to compare against and produces no events. Items only
// accumulate, so only newly opened targets are reported.
func detectEvents(prev *world.Reachability, next world.Reachability) []Event {
	if prev == nil {
		return nil
	}
	var events []Event
	for _, name := range next.Entrances {
		if _, found := slices.BinarySearch(prev.Entrances, name); !found {
			events = append(events, Event{Kind: EventEntranceOpened, Target: name})
		}
	}
	for _, name := range next.Locations {
		if _, found := slices.BinarySearch(prev.Locations, name); !found {
			events = append(events, Event{Kind: EventLocationReachable, Target: name})
		}
	}
	if next.Goal && !prev.Goal {
		events = append(events, Event{Kind: EventGoalReachable, Target: world.GoalItem})
	}
	return events
}
