package loadout

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Encode maps l onto Layout. A Level capability with ceiling C takes C
// consecutive bits and bit j (1-indexed) is set iff the level is at least j,
// so a higher level is always a superset of a lower one. Levels above the
// ceiling saturate.
func Encode(l Loadout) Bits {
	var bits Bits
	mask := Bits(1)
	for _, c := range Layout {
		v := c.get(l)
		for j := 1; j <= c.Ceiling; j++ {
			if v >= j {
				bits |= mask
			}
			mask <<= 1
		}
	}
	return bits
}

// Decode is the inverse of Encode for values inside every ceiling.
func Decode(bits Bits) Loadout {
	var l Loadout
	mask := Bits(1)
	for _, c := range Layout {
		n := 0
		for j := 0; j < c.Ceiling; j++ {
			if bits&mask != 0 {
				n++
			}
			mask <<= 1
		}
		c.set(&l, n)
	}
	return l
}

// Summary renders bits as a bracketed, comma-joined list of the capabilities
// it contains, e.g. "[slide, 6 clings, 1 kick]". Diagnostics only.
func Summary(bits Bits) string {
	var parts []string
	mask := Bits(1)
	for _, c := range Layout {
		n := 0
		for j := 0; j < c.Ceiling; j++ {
			if bits&mask != 0 {
				n++
			}
			mask <<= 1
		}
		switch {
		case n == 0:
		case c.Kind == Flag:
			parts = append(parts, c.Label)
		case n == 1:
			parts = append(parts, "1 "+c.Label)
		default:
			parts = append(parts, strconv.Itoa(n)+" "+c.Plural)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FromFields builds a Loadout from a decoded catalog object. Omitted keys stay
// zero; unknown keys, wrong types and negative levels are rejected.
func FromFields(fields map[string]any) (Loadout, error) {
	var l Loadout
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		c, ok := capability(k)
		if !ok {
			return Loadout{}, fmt.Errorf("unknown loadout field %q", k)
		}
		raw := fields[k]
		switch c.Kind {
		case Flag:
			b, ok := raw.(bool)
			if !ok {
				return Loadout{}, fmt.Errorf("loadout field %q: want bool, got %T", k, raw)
			}
			c.set(&l, boolInt(b))
		case Level:
			n, err := toLevel(raw)
			if err != nil {
				return Loadout{}, fmt.Errorf("loadout field %q: %w", k, err)
			}
			c.set(&l, n)
		}
	}
	return l, nil
}

func toLevel(raw any) (int, error) {
	var n int
	switch v := raw.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, fmt.Errorf("level %d out of range", v)
		}
		n = int(v)
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, fmt.Errorf("level %v is not an integer", v)
		}
		n = int(v)
	default:
		return 0, fmt.Errorf("want integer, got %T", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative level %d", n)
	}
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
