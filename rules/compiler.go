package rules

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"github.com/highrow623/pseudoregalia-archipelago/tricks"
	"golang.org/x/sync/errgroup"
)

// SixKeysTag lowers the small key requirement from 7 to 6 when enabled.
const SixKeysTag = "only_require_6_keys"

// Ruleset is one player's compiled logic. It shares nothing mutable with
// other players' rulesets.
type Ruleset struct {
	Player            int
	Tags              tags.Set
	RequiredSmallKeys int
	SplitSunGreaves   bool
	Entrances         map[string]Rule
	Locations         map[string]Rule
}

// RequiredSmallKeys returns the small key threshold for a resolved tag set.
func RequiredSmallKeys(resolved tags.Set) int {
	if resolved.Has(SixKeysTag) {
		return 6
	}
	return loadout.DefaultRequiredSmallKeys
}

// Compile runs the whole pipeline for one player: tag closure, key
// threshold, trick filtering, antichain reduction and rule building.
func Compile(cat *tricks.Catalog, opts PlayerOptions, resolve tags.Resolver) (*Ruleset, error) {
	opts.Validate()

	resolved, err := resolve(tags.NewSet(opts.TrickTags...), cat.TagHierarchy)
	if err != nil {
		return nil, fmt.Errorf("resolve tags for player %d: %w", opts.Player, err)
	}
	keys := RequiredSmallKeys(resolved)
	sel := opts.Selection(resolved)
	warnUnknownIDs(cat, opts)

	rs := &Ruleset{
		Player:            opts.Player,
		Tags:              resolved,
		RequiredSmallKeys: keys,
		SplitSunGreaves:   opts.SplitSunGreaves,
		Entrances:         compileGroup(opts.Player, cat.EntranceTricks, sel, keys),
		Locations:         compileGroup(opts.Player, cat.LocationTricks, sel, keys),
	}

	slog.Info("ruleset compiled",
		"player", opts.Player,
		"tags", resolved.Sorted(),
		"requiredSmallKeys", keys,
		"entrances", len(rs.Entrances),
		"locations", len(rs.Locations),
	)
	return rs, nil
}

func compileGroup(player int, byTarget map[string][]tricks.Trick, sel Selection, keys int) map[string]Rule {
	filtered := Filter(byTarget, sel)
	out := make(map[string]Rule, len(filtered))
	for target, reqs := range filtered {
		if len(reqs) == 0 && len(byTarget[target]) > 0 {
			slog.Warn("every trick filtered out, target unreachable", "player", player, "target", target)
			out[target] = Never(target)
			continue
		}
		reduced := Reduce(reqs)
		r := Build(target, reduced, keys)
		if len(reduced) < len(reqs) {
			slog.Debug("requirements reduced", "player", player, "target", target,
				"before", len(reqs), "after", len(reduced), "rule", r.String())
		}
		out[target] = r
	}
	return out
}

func warnUnknownIDs(cat *tricks.Catalog, opts PlayerOptions) {
	known := NewIDSet(cat.TrickIDs()...)
	for _, id := range append(append([]string{}, opts.IncludeTrickIDs...), opts.ExcludeTrickIDs...) {
		if !known.Has(id) {
			slog.Warn("trick id override matches no trick", "player", opts.Player, "id", id)
		}
	}
}

// CompileAll compiles every player concurrently against the shared catalog.
// Results are ordered like players.
func CompileAll(ctx context.Context, cat *tricks.Catalog, players []PlayerOptions, resolve tags.Resolver) ([]*Ruleset, error) {
	out := make([]*Ruleset, len(players))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range players {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rs, err := Compile(cat, p, resolve)
			if err != nil {
				return err
			}
			out[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Targets returns the sorted names of every compiled entrance and location.
func (rs *Ruleset) Targets() (entrances, locations []string) {
	for name := range rs.Entrances {
		entrances = append(entrances, name)
	}
	for name := range rs.Locations {
		locations = append(locations, name)
	}
	sort.Strings(entrances)
	sort.Strings(locations)
	return entrances, locations
}
