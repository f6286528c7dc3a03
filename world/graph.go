package world

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
	"github.com/highrow623/pseudoregalia-archipelago/rules"
	"github.com/highrow623/pseudoregalia-archipelago/tricks"
	"gopkg.in/yaml.v3"
)

// Graph is an in-memory Registry. A slot without a rule is always open.
// Graph is not safe for concurrent mutation; each session owns its own.
type Graph struct {
	entrances  map[string]*slot
	locations  map[string]*slot
	completion rules.Predicate
}

type slot struct {
	rule rules.Predicate
}

func (s *slot) SetRule(p rules.Predicate) { s.rule = p }

func (s *slot) open(inv loadout.Inventory) bool {
	return s.rule == nil || s.rule.Evaluate(inv)
}

// Layout is the on-disk world file: the names of every entrance and
// location the host knows about.
type Layout struct {
	Entrances []string `yaml:"entrances"`
	Locations []string `yaml:"locations"`
}

// NewGraph creates a graph with the given slots.
func NewGraph(l Layout) *Graph {
	g := &Graph{
		entrances: make(map[string]*slot, len(l.Entrances)),
		locations: make(map[string]*slot, len(l.Locations)),
	}
	for _, name := range l.Entrances {
		g.entrances[name] = &slot{}
	}
	for _, name := range l.Locations {
		g.locations[name] = &slot{}
	}
	return g
}

// LoadLayout reads a YAML world file.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open world %s: %w", path, err)
	}
	defer f.Close()
	return ParseLayout(f)
}

// ParseLayout decodes a YAML world layout. Unknown fields are rejected.
func ParseLayout(r io.Reader) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("decode world: %w", err)
	}
	return l, nil
}

// LoadGraph reads a YAML world file into an empty graph.
func LoadGraph(path string) (*Graph, error) {
	l, err := LoadLayout(path)
	if err != nil {
		return nil, err
	}
	return NewGraph(l), nil
}

// CatalogLayout derives a layout from the targets a catalog names, plus the
// fixed major key location. With split, the Sun Greaves location is
// replaced by its numbered parts.
func CatalogLayout(cat *tricks.Catalog, split bool) Layout {
	entrances, locations := cat.Targets()
	l := Layout{Entrances: entrances}
	for _, name := range locations {
		if name == SunGreavesLocation && split {
			l.Locations = append(l.Locations, SunGreavesSplitNames()...)
			continue
		}
		l.Locations = append(l.Locations, name)
	}
	l.Locations = append(l.Locations, MajorKeyLocation)
	sort.Strings(l.Locations)
	return l
}

func (g *Graph) Entrance(name string) (Slot, error) {
	s, ok := g.entrances[name]
	if !ok {
		return nil, unknownTarget("entrance", name, keys(g.entrances))
	}
	return s, nil
}

func (g *Graph) Location(name string) (Slot, error) {
	s, ok := g.locations[name]
	if !ok {
		return nil, unknownTarget("location", name, keys(g.locations))
	}
	return s, nil
}

func (g *Graph) SetCompletion(p rules.Predicate) { g.completion = p }

// Reachability is the result of evaluating every slot against one inventory.
type Reachability struct {
	Entrances []string `json:"entrances"`
	Locations []string `json:"locations"`
	Goal      bool     `json:"goal"`
}

// Evaluate reports which slots are open for inv. Names are sorted.
func (g *Graph) Evaluate(inv loadout.Inventory) Reachability {
	var r Reachability
	for name, s := range g.entrances {
		if s.open(inv) {
			r.Entrances = append(r.Entrances, name)
		}
	}
	for name, s := range g.locations {
		if s.open(inv) {
			r.Locations = append(r.Locations, name)
		}
	}
	sort.Strings(r.Entrances)
	sort.Strings(r.Locations)
	r.Goal = g.completion != nil && g.completion.Evaluate(inv)
	return r
}

func keys(m map[string]*slot) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
