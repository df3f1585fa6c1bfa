package filestore

import (
	"fmt"

	"lms/codec"
	"lms/personid"
	"lms/relationship"
)

// linkEntry is one relationship of the links file:
//
//	{"id": 1, "left": 3, "right": 4, "relationship": "parent"}
type linkEntry struct {
	ID           int    `json:"id"`
	Left         int    `json:"left"`
	Right        int    `json:"right"`
	Relationship string `json:"relationship"`
}

var linkEntries = codec.NewJsonCodec[[]linkEntry]()

// LoadLinks reads every relationship from path. A missing or empty file
// holds none.
func LoadLinks(path string) ([]relationship.Link, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []relationship.Link{}, nil
	}

	raw, err := linkEntries.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	out := make([]relationship.Link, 0, len(raw))
	for i, e := range raw {
		if e.Relationship == "" {
			return nil, fmt.Errorf("entry %d of %s: missing field 'relationship'", i, path)
		}
		out = append(out, relationship.Link{
			ID:         personid.ID(e.ID),
			Left:       personid.ID(e.Left),
			Right:      personid.ID(e.Right),
			Definition: e.Relationship,
		})
	}
	return out, nil
}

// SaveLinks replaces the content of path with links. No links means no
// file.
func SaveLinks(path string, links []relationship.Link) error {
	if len(links) == 0 {
		return Remove(path)
	}

	raw := make([]linkEntry, len(links))
	for i, l := range links {
		raw[i] = linkEntry{ID: int(l.ID), Left: int(l.Left), Right: int(l.Right), Relationship: l.Definition}
	}
	data, err := linkEntries.Encode(raw)
	if err != nil {
		return fmt.Errorf("encoding relationships: %w", err)
	}
	return replace(path, data)
}
