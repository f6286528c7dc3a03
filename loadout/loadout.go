// Package loadout models what a player can do as a fixed set of monotonic
// capabilities and encodes it into the bitmask the logic rules operate on.
package loadout

// Loadout is a snapshot of capability levels. The same shape describes both a
// trick's requirement and a player's live state.
type Loadout struct {
	DreamBreaker   bool
	Strikebreak    bool
	SoulCutter     bool
	Sunsetter      bool
	Slide          bool
	SolarWind      bool
	AscendantLight bool
	Clings         int
	Kicks          int
	SmallKeys      bool
}

// Bits is an encoded loadout. Bit i set means the i-th capability threshold
// of Layout is met (or, for a requirement, needed).
type Bits uint32

// Kind distinguishes on/off capabilities from counted ones.
type Kind int

const (
	Flag Kind = iota
	Level
)

// Capability is one entry of the bit layout.
type Capability struct {
	Key     string // catalog field name
	Label   string // summary text; singular for levels
	Plural  string // summary text for levels above 1
	Kind    Kind
	Ceiling int // bits reserved for a Level capability
	get     func(Loadout) int
	set     func(*Loadout, int)
}

func flag(key, label string, get func(Loadout) bool, set func(*Loadout, bool)) Capability {
	return Capability{
		Key:     key,
		Label:   label,
		Kind:    Flag,
		Ceiling: 1,
		get: func(l Loadout) int {
			if get(l) {
				return 1
			}
			return 0
		},
		set: func(l *Loadout, v int) { set(l, v > 0) },
	}
}

func level(key, label, plural string, ceiling int, get func(Loadout) int, set func(*Loadout, int)) Capability {
	return Capability{Key: key, Label: label, Plural: plural, Kind: Level, Ceiling: ceiling, get: get, set: set}
}

// Layout is the bit layout shared by every encoder, decoder and state
// constructor. Reordering it changes the meaning of every Bits value.
var Layout = []Capability{
	flag("dream_breaker", "dream breaker",
		func(l Loadout) bool { return l.DreamBreaker }, func(l *Loadout, v bool) { l.DreamBreaker = v }),
	flag("strikebreak", "strikebreak",
		func(l Loadout) bool { return l.Strikebreak }, func(l *Loadout, v bool) { l.Strikebreak = v }),
	flag("soul_cutter", "soul cutter",
		func(l Loadout) bool { return l.SoulCutter }, func(l *Loadout, v bool) { l.SoulCutter = v }),
	flag("sunsetter", "sunsetter",
		func(l Loadout) bool { return l.Sunsetter }, func(l *Loadout, v bool) { l.Sunsetter = v }),
	flag("slide", "slide",
		func(l Loadout) bool { return l.Slide }, func(l *Loadout, v bool) { l.Slide = v }),
	flag("solar_wind", "solar wind",
		func(l Loadout) bool { return l.SolarWind }, func(l *Loadout, v bool) { l.SolarWind = v }),
	flag("ascendant_light", "ascendant light",
		func(l Loadout) bool { return l.AscendantLight }, func(l *Loadout, v bool) { l.AscendantLight = v }),
	level("clings", "cling", "clings", 6,
		func(l Loadout) int { return l.Clings }, func(l *Loadout, v int) { l.Clings = v }),
	level("kicks", "kick", "kicks", 4,
		func(l Loadout) int { return l.Kicks }, func(l *Loadout, v int) { l.Kicks = v }),
	flag("small_keys", "small keys",
		func(l Loadout) bool { return l.SmallKeys }, func(l *Loadout, v bool) { l.SmallKeys = v }),
}

// Width is the number of bits Layout occupies.
func Width() int {
	n := 0
	for _, c := range Layout {
		n += c.Ceiling
	}
	return n
}

// Value returns the raw level of c in l (0 or 1 for flags).
func (c Capability) Value(l Loadout) int { return c.get(l) }

// capability looks up a layout entry by catalog key.
func capability(key string) (Capability, bool) {
	for _, c := range Layout {
		if c.Key == key {
			return c, true
		}
	}
	return Capability{}, false
}
