package world

import (
	"fmt"
	"log/slog"

	"github.com/highrow623/pseudoregalia-archipelago/rules"
)

const (
	// SunGreavesLocation is split into three numbered locations when the
	// player replaces Sun Greaves with individual Air Kicks.
	SunGreavesLocation = "Listless Library - Sun Greaves"

	// MajorKeyLocation is the door behind all five major keys.
	MajorKeyLocation = "D S T RT ED M M O   Y"

	// GoalItem completes the game for its player.
	GoalItem = "Something Worth Being Awake For"

	sunGreavesSplits = 3
)

// MajorKeys open MajorKeyLocation.
var MajorKeys = []string{
	"Major Key - Empty Bailey",
	"Major Key - The Underbelly",
	"Major Key - Tower Remains",
	"Major Key - Sansa Keep",
	"Major Key - Twilight Theatre",
}

// SunGreavesSplitNames returns the location names SunGreavesLocation expands
// to when split is enabled.
func SunGreavesSplitNames() []string {
	names := make([]string, sunGreavesSplits)
	for i := range names {
		names[i] = fmt.Sprintf("%s %d", SunGreavesLocation, i+1)
	}
	return names
}

// Apply attaches a compiled ruleset to the host's registry: every entrance
// and location rule, the major key door and the completion condition.
func Apply(rs *rules.Ruleset, reg Registry, splitSunGreaves bool) error {
	entrances, locations := rs.Targets()

	for _, name := range entrances {
		slot, err := reg.Entrance(name)
		if err != nil {
			return fmt.Errorf("player %d: %w", rs.Player, err)
		}
		slot.SetRule(rs.Entrances[name])
	}

	for _, name := range locations {
		names := []string{name}
		if name == SunGreavesLocation && splitSunGreaves {
			names = SunGreavesSplitNames()
		}
		for _, n := range names {
			slot, err := reg.Location(n)
			if err != nil {
				return fmt.Errorf("player %d: %w", rs.Player, err)
			}
			slot.SetRule(rs.Locations[name])
		}
	}

	door, err := rules.NewCondition("major keys", rules.HasAllSrc(MajorKeys...))
	if err != nil {
		return err
	}
	slot, err := reg.Location(MajorKeyLocation)
	if err != nil {
		return fmt.Errorf("player %d: %w", rs.Player, err)
	}
	slot.SetRule(door)

	goal, err := rules.NewCondition("goal", rules.HasSrc(GoalItem))
	if err != nil {
		return err
	}
	reg.SetCompletion(goal)

	slog.Debug("rules applied",
		"player", rs.Player,
		"entrances", len(entrances),
		"locations", len(locations),
		"splitSunGreaves", splitSunGreaves,
	)
	return nil
}
