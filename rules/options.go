package rules

import (
	"slices"
	"strings"

	"github.com/highrow623/pseudoregalia-archipelago/tags"
)

// PlayerOptions are the logic-relevant options one player configured.
type PlayerOptions struct {
	Player          int      `yaml:"player" json:"player"`
	Name            string   `yaml:"name" json:"name"`
	TrickTags       []string `yaml:"trick_tags" json:"trick_tags"`
	IncludeTrickIDs []string `yaml:"include_trick_ids" json:"include_trick_ids"`
	ExcludeTrickIDs []string `yaml:"exclude_trick_ids" json:"exclude_trick_ids"`
	SplitSunGreaves bool     `yaml:"split_sun_greaves" json:"split_sun_greaves"`
}

// Validate normalizes the option sets: entries are trimmed, blanks dropped,
// and duplicates collapsed into sorted order.
func (o *PlayerOptions) Validate() {
	o.TrickTags = normalize(o.TrickTags)
	o.IncludeTrickIDs = normalize(o.IncludeTrickIDs)
	o.ExcludeTrickIDs = normalize(o.ExcludeTrickIDs)
}

// Selection combines the options with the player's resolved tag closure.
func (o PlayerOptions) Selection(resolved tags.Set) Selection {
	return Selection{
		Tags:    resolved,
		Include: NewIDSet(o.IncludeTrickIDs...),
		Exclude: NewIDSet(o.ExcludeTrickIDs...),
	}
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
