package loadout

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
)

func TestEncodeBitPositions(t *testing.T) {
	tests := []struct {
		name string
		l    Loadout
		want Bits
	}{
		{"empty", Loadout{}, 0},
		{"dream breaker", Loadout{DreamBreaker: true}, 1 << 0},
		{"ascendant light", Loadout{AscendantLight: true}, 1 << 6},
		{"one cling", Loadout{Clings: 1}, 1 << 7},
		{"six clings", Loadout{Clings: 6}, 0b111111 << 7},
		{"two kicks", Loadout{Kicks: 2}, 0b11 << 13},
		{"four kicks", Loadout{Kicks: 4}, 0b1111 << 13},
		{"small keys", Loadout{SmallKeys: true}, 1 << 17},
		{"saturated kicks", Loadout{Kicks: 9}, 0b1111 << 13},
		{"slide and solar wind", Loadout{Slide: true, SolarWind: true}, 1<<4 | 1<<5},
	}
	for _, tc := range tests {
		if got := Encode(tc.l); got != tc.want {
			t.Errorf("%s: Encode() = %b, want %b", tc.name, got, tc.want)
		}
	}
}

func TestWidthFitsBits(t *testing.T) {
	if w := Width(); w != 18 {
		t.Errorf("Width() = %d, want 18", w)
	}
	if Width() > 32 {
		t.Fatalf("layout does not fit in Bits")
	}
}

func TestHigherLevelIsSuperset(t *testing.T) {
	for lo := 0; lo <= 6; lo++ {
		for hi := lo; hi <= 6; hi++ {
			a := Encode(Loadout{Clings: lo})
			b := Encode(Loadout{Clings: hi})
			if a&b != a {
				t.Errorf("clings %d bits %b not subset of clings %d bits %b", lo, a, hi, b)
			}
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		l    Loadout
		want string
	}{
		{Loadout{}, "[]"},
		{Loadout{DreamBreaker: true, Slide: true}, "[dream breaker, slide]"},
		{Loadout{Clings: 1, Kicks: 1}, "[1 cling, 1 kick]"},
		{Loadout{SolarWind: true, Clings: 6, Kicks: 3, SmallKeys: true}, "[solar wind, 6 clings, 3 kicks, small keys]"},
	}
	for _, tc := range tests {
		if got := Summary(Encode(tc.l)); got != tc.want {
			t.Errorf("Summary(Encode(%+v)) = %q, want %q", tc.l, got, tc.want)
		}
	}
}

func randomLoadout(r *rand.Rand) Loadout {
	return Loadout{
		DreamBreaker:   r.IntN(2) == 1,
		Strikebreak:    r.IntN(2) == 1,
		SoulCutter:     r.IntN(2) == 1,
		Sunsetter:      r.IntN(2) == 1,
		Slide:          r.IntN(2) == 1,
		SolarWind:      r.IntN(2) == 1,
		AscendantLight: r.IntN(2) == 1,
		Clings:         r.IntN(7),
		Kicks:          r.IntN(5),
		SmallKeys:      r.IntN(2) == 1,
	}
}

// Summary must list exactly the non-zero capabilities, with exact counts.
func TestSummaryListsExactlyTheLoadout(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		l := randomLoadout(r)
		got := Summary(Encode(l))

		var want []string
		for _, c := range Layout {
			v := c.Value(l)
			switch {
			case v == 0:
			case c.Kind == Flag:
				want = append(want, c.Label)
			case v == 1:
				want = append(want, "1 "+c.Label)
			default:
				want = append(want, strconv.Itoa(v)+" "+c.Plural)
			}
		}
		if exp := "[" + strings.Join(want, ", ") + "]"; got != exp {
			t.Fatalf("Summary(Encode(%+v)) = %q, want %q", l, got, exp)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		l := randomLoadout(r)
		if got := Decode(Encode(l)); got != l {
			t.Fatalf("Decode(Encode(%+v)) = %+v", l, got)
		}
	}
}

func TestFromFields(t *testing.T) {
	l, err := FromFields(map[string]any{"solar_wind": true, "clings": float64(6), "kicks": 2})
	if err != nil {
		t.Fatalf("FromFields() error = %v", err)
	}
	want := Loadout{SolarWind: true, Clings: 6, Kicks: 2}
	if l != want {
		t.Errorf("FromFields() = %+v, want %+v", l, want)
	}
}

func TestFromFieldsRejects(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
	}{
		{"unknown field", map[string]any{"grappling_hook": true}},
		{"flag as number", map[string]any{"slide": 1}},
		{"level as bool", map[string]any{"kicks": true}},
		{"fractional level", map[string]any{"kicks": 1.5}},
		{"negative level", map[string]any{"clings": -1}},
	}
	for _, tc := range tests {
		if _, err := FromFields(tc.fields); err == nil {
			t.Errorf("%s: FromFields() error = nil, want error", tc.name)
		}
	}
}
