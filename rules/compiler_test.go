package rules

import (
	"context"
	"slices"
	"testing"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"github.com/highrow623/pseudoregalia-archipelago/tricks"
)

func testCatalog() *tricks.Catalog {
	return &tricks.Catalog{
		EntranceTricks: map[string][]tricks.Trick{
			"Keep Gate": {
				trick("gate_keys", loadout.Loadout{SmallKeys: true}),
			},
			"Library Climb": {
				trick("climb_sw", loadout.Loadout{SolarWind: true}),
				trick("climb_sw_slide", loadout.Loadout{SolarWind: true, Slide: true}),
				trick("climb_kicks", loadout.Loadout{Kicks: 2}, "kicks"),
			},
			"Open Door": {},
		},
		LocationTricks: map[string][]tricks.Trick{
			"Hidden Chest": {
				trick("chest_clings", loadout.Loadout{Clings: 6}, "hard"),
			},
			"Free Item": {
				trick("free_sw", loadout.Loadout{SolarWind: true}),
				trick("free", loadout.Loadout{}),
			},
		},
		TagHierarchy: tags.Hierarchy{
			"hard": tags.NewSet("kicks", SixKeysTag),
		},
	}
}

func worklist(t *testing.T) tags.Resolver {
	t.Helper()
	r, err := tags.NewResolver(tags.EngineWorklist)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func TestCompileDefaults(t *testing.T) {
	rs, err := Compile(testCatalog(), PlayerOptions{Player: 1}, worklist(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if rs.RequiredSmallKeys != 7 {
		t.Errorf("RequiredSmallKeys = %d, want 7", rs.RequiredSmallKeys)
	}

	climb := rs.Entrances["Library Climb"]
	want := []loadout.Bits{loadout.Encode(loadout.Loadout{SolarWind: true})}
	if !slices.Equal(climb.Requirements(), want) {
		t.Errorf("Library Climb = %s, want only [solar wind]", climb)
	}
	if !rs.Entrances["Open Door"].Unconditional() {
		t.Error("Open Door should be unconditional")
	}
	if !rs.Locations["Free Item"].Unconditional() {
		t.Error("Free Item should collapse to unconditional")
	}
	if got := rs.Locations["Free Item"].Requirements(); !slices.Equal(got, []loadout.Bits{0}) {
		t.Errorf("Free Item requirements = %v, want [0]", got)
	}
	if !rs.Locations["Hidden Chest"].Impossible() {
		t.Error("Hidden Chest should be unreachable without the hard tag")
	}

	entrances, locations := rs.Targets()
	if !slices.Equal(entrances, []string{"Keep Gate", "Library Climb", "Open Door"}) {
		t.Errorf("entrances = %v", entrances)
	}
	if !slices.Equal(locations, []string{"Free Item", "Hidden Chest"}) {
		t.Errorf("locations = %v", locations)
	}
}

// Filtering every trick away closes a gated target; only a target with no
// catalog tricks at all is open.
func TestFilteredTargetStaysClosed(t *testing.T) {
	rs, err := Compile(testCatalog(), PlayerOptions{Player: 1}, worklist(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	everything := inventory{loadout.ItemClingGem: 1, loadout.ItemSolarWind: 1, loadout.ItemSunGreaves: 1}
	if rs.Locations["Hidden Chest"].Evaluate(everything) {
		t.Error("Hidden Chest opened with every hard trick filtered out")
	}
	if !rs.Entrances["Open Door"].Evaluate(inventory{}) {
		t.Error("Open Door has no tricks and should be open")
	}
}

func TestCompileWithTags(t *testing.T) {
	rs, err := Compile(testCatalog(), PlayerOptions{Player: 2, TrickTags: []string{"hard"}}, worklist(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for _, tag := range []string{"hard", "kicks", SixKeysTag} {
		if !rs.Tags.Has(tag) {
			t.Errorf("resolved tags %v missing %q", rs.Tags.Sorted(), tag)
		}
	}
	if got := len(rs.Entrances["Library Climb"].Requirements()); got != 2 {
		t.Errorf("Library Climb has %d alternatives, want 2", got)
	}
	if !rs.Locations["Hidden Chest"].Evaluate(inventory{loadout.ItemClingGem: 1}) {
		t.Error("Hidden Chest should open with the cling gem")
	}
}

// Six keys open the gate only when the six-key tag is in the closure.
func TestSixKeyThreshold(t *testing.T) {
	sixKeys := inventory{loadout.ItemSmallKey: 6}

	plain, err := Compile(testCatalog(), PlayerOptions{Player: 1}, worklist(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if plain.Entrances["Keep Gate"].Evaluate(sixKeys) {
		t.Error("six keys opened the gate with the default threshold")
	}
	if !plain.Entrances["Keep Gate"].Evaluate(inventory{loadout.ItemSmallKey: 7}) {
		t.Error("seven keys did not open the gate")
	}

	lowered, err := Compile(testCatalog(), PlayerOptions{Player: 2, TrickTags: []string{"hard"}}, worklist(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if lowered.RequiredSmallKeys != 6 {
		t.Errorf("RequiredSmallKeys = %d, want 6", lowered.RequiredSmallKeys)
	}
	if !lowered.Entrances["Keep Gate"].Evaluate(sixKeys) {
		t.Error("six keys did not open the gate with only_require_6_keys")
	}
}

func TestCompileOverrides(t *testing.T) {
	opts := PlayerOptions{
		Player:          3,
		TrickTags:       []string{"kicks"},
		IncludeTrickIDs: []string{"chest_clings"},
		ExcludeTrickIDs: []string{"climb_kicks", "climb_sw"},
	}
	rs, err := Compile(testCatalog(), opts, worklist(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	// climb_sw is a default trick and survives the exclusion.
	want := []loadout.Bits{loadout.Encode(loadout.Loadout{SolarWind: true})}
	if got := rs.Entrances["Library Climb"].Requirements(); !slices.Equal(got, want) {
		t.Errorf("Library Climb = %v, want %v", got, want)
	}
	if rs.Locations["Hidden Chest"].Impossible() {
		t.Error("included chest_clings was filtered out")
	}
}

func TestCompileAll(t *testing.T) {
	players := []PlayerOptions{
		{Player: 1},
		{Player: 2, TrickTags: []string{"hard"}},
		{Player: 3, TrickTags: []string{"kicks"}},
	}
	out, err := CompileAll(context.Background(), testCatalog(), players, worklist(t))
	if err != nil {
		t.Fatalf("CompileAll() error = %v", err)
	}
	if len(out) != len(players) {
		t.Fatalf("CompileAll() returned %d rulesets, want %d", len(out), len(players))
	}
	for i, rs := range out {
		if rs.Player != players[i].Player {
			t.Errorf("out[%d].Player = %d, want %d", i, rs.Player, players[i].Player)
		}
	}
	if out[0].RequiredSmallKeys != 7 || out[1].RequiredSmallKeys != 6 || out[2].RequiredSmallKeys != 7 {
		t.Errorf("thresholds = %d %d %d, want 7 6 7",
			out[0].RequiredSmallKeys, out[1].RequiredSmallKeys, out[2].RequiredSmallKeys)
	}
}

func TestCompileAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CompileAll(ctx, testCatalog(), []PlayerOptions{{Player: 1}}, worklist(t)); err == nil {
		t.Error("CompileAll() with cancelled context error = nil")
	}
}

func TestCompileDatalogMatchesWorklist(t *testing.T) {
	datalog, err := tags.NewResolver(tags.EngineDatalog)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	opts := PlayerOptions{Player: 1, TrickTags: []string{"hard"}}
	a, err := Compile(testCatalog(), opts, worklist(t))
	if err != nil {
		t.Fatalf("Compile(worklist) error = %v", err)
	}
	b, err := Compile(testCatalog(), opts, datalog)
	if err != nil {
		t.Fatalf("Compile(datalog) error = %v", err)
	}
	if !slices.Equal(a.Tags.Sorted(), b.Tags.Sorted()) {
		t.Errorf("tags differ: %v vs %v", a.Tags.Sorted(), b.Tags.Sorted())
	}
	for name, r := range a.Entrances {
		if r.String() != b.Entrances[name].String() {
			t.Errorf("%s: %s vs %s", name, r, b.Entrances[name])
		}
	}
}
