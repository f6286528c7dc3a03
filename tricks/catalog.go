// Package tricks loads the declarative trick database: the movement
// techniques that gate each entrance and location, and the tag hierarchy that
// decides which optional tricks a player has opted into.
package tricks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"gopkg.in/yaml.v3"
)

// ErrMalformedCatalog is wrapped by every load failure. A partially loaded
// catalog is never returned.
var ErrMalformedCatalog = errors.New("malformed trick catalog")

// Trick is one way past a rule target. A trick without tags is a default
// trick and is always in logic.
type Trick struct {
	ID      string
	Loadout loadout.Loadout
	Tags    tags.Set
}

// IsDefault reports whether the trick is gated by no tag.
func (t Trick) IsDefault() bool { return len(t.Tags) == 0 }

// Catalog is the loaded trick database. It is read-only after loading and
// may be shared by concurrent player compilations.
type Catalog struct {
	EntranceTricks map[string][]Trick
	LocationTricks map[string][]Trick
	TagHierarchy   tags.Hierarchy
}

// Format is a catalog encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension; unknown extensions are JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMalformedCatalog, path, err)
	}
	cat, err := Parse(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document in the given format.
func Parse(r io.Reader, format Format) (*Catalog, error) {
	var doc any
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %v", ErrMalformedCatalog, err)
		}
		var extra any
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decode yaml: catalog must be a single document", ErrMalformedCatalog)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", ErrMalformedCatalog, err)
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decode json: trailing data after catalog", ErrMalformedCatalog)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrMalformedCatalog, format)
	}

	cat, err := fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return cat, nil
}

// Targets returns every entrance and location name, sorted.
func (c *Catalog) Targets() (entrances, locations []string) {
	return sortedKeys(c.EntranceTricks), sortedKeys(c.LocationTricks)
}

// TrickIDs returns every distinct trick id in the catalog, sorted.
func (c *Catalog) TrickIDs() []string {
	seen := make(map[string]struct{})
	for _, group := range []map[string][]Trick{c.EntranceTricks, c.LocationTricks} {
		for _, list := range group {
			for _, t := range list {
				seen[t.ID] = struct{}{}
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys(m map[string][]Trick) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
