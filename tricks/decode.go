package tricks

import (
	"fmt"

	"github.com/highrow623/pseudoregalia-archipelago/loadout"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
)

// fromDocument validates a generically decoded document. JSON and YAML both
// land here so the two formats accept exactly the same catalogs.
func fromDocument(doc any) (*Catalog, error) {
	root, err := asObject(doc, "catalog")
	if err != nil {
		return nil, err
	}

	entrances, err := trickGroups(root, "entrance_tricks")
	if err != nil {
		return nil, err
	}
	locations, err := trickGroups(root, "location_tricks")
	if err != nil {
		return nil, err
	}
	hierarchy, err := tagHierarchy(root)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		EntranceTricks: entrances,
		LocationTricks: locations,
		TagHierarchy:   hierarchy,
	}, nil
}

func trickGroups(root map[string]any, key string) (map[string][]Trick, error) {
	raw, ok := root[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing %q", key)
	}
	obj, err := asObject(raw, key)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]Trick, len(obj))
	for target, rawList := range obj {
		list, ok := rawList.([]any)
		if !ok && rawList != nil {
			return nil, fmt.Errorf("%s[%q]: want list of tricks, got %T", key, target, rawList)
		}
		tricks := make([]Trick, 0, len(list))
		for i, rawTrick := range list {
			t, err := decodeTrick(rawTrick)
			if err != nil {
				return nil, fmt.Errorf("%s[%q][%d]: %w", key, target, i, err)
			}
			tricks = append(tricks, t)
		}
		groups[target] = tricks
	}
	return groups, nil
}

func decodeTrick(raw any) (Trick, error) {
	obj, err := asObject(raw, "trick")
	if err != nil {
		return Trick{}, err
	}

	id, ok := obj["id"].(string)
	if !ok || id == "" {
		return Trick{}, fmt.Errorf("missing or invalid \"id\"")
	}

	rawLoadout, ok := obj["loadout"]
	if !ok || rawLoadout == nil {
		return Trick{}, fmt.Errorf("trick %q: missing \"loadout\"", id)
	}
	fields, err := asObject(rawLoadout, "loadout")
	if err != nil {
		return Trick{}, fmt.Errorf("trick %q: %w", id, err)
	}
	l, err := loadout.FromFields(fields)
	if err != nil {
		return Trick{}, fmt.Errorf("trick %q: %w", id, err)
	}

	set := tags.NewSet()
	if rawTags, ok := obj["tags"]; ok && rawTags != nil {
		names, err := stringList(rawTags)
		if err != nil {
			return Trick{}, fmt.Errorf("trick %q tags: %w", id, err)
		}
		set = tags.NewSet(names...)
	}

	for k := range obj {
		switch k {
		case "id", "loadout", "tags":
		default:
			return Trick{}, fmt.Errorf("trick %q: unknown field %q", id, k)
		}
	}

	return Trick{ID: id, Loadout: l, Tags: set}, nil
}

func tagHierarchy(root map[string]any) (tags.Hierarchy, error) {
	raw, ok := root["tag_hierarchy"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing \"tag_hierarchy\"")
	}
	obj, err := asObject(raw, "tag_hierarchy")
	if err != nil {
		return nil, err
	}
	h := make(tags.Hierarchy, len(obj))
	for parent, rawChildren := range obj {
		children, err := stringList(rawChildren)
		if err != nil {
			return nil, fmt.Errorf("tag_hierarchy[%q]: %w", parent, err)
		}
		h[parent] = tags.NewSet(children...)
	}
	return h, nil
}

// asObject requires raw to be an object. Callers that allow an absent value
// check for nil first; a null never stands in for a required object.
func asObject(raw any, what string) (map[string]any, error) {
	v, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: want object, got %T", what, raw)
	}
	return v, nil
}

func stringList(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want list of strings, got %T", raw)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
