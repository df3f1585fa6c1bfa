package relationship

import (
	"errors"
	"fmt"
	"strings"

	"lms/person"
	"lms/personid"
)

var ErrNotInRelationship = errors.New("person is not part of the relationship")

// Relationship relates two persons as Definition says.
type Relationship struct {
	Left       person.Person
	Right      person.Person
	Definition Definition
}

// ReprFor describes p from the point of view of the relationship.
func (r Relationship) ReprFor(p person.Person) (string, error) {
	switch p.ID {
	case r.Left.ID:
		return r.Definition.LeftRepr(p), nil
	case r.Right.ID:
		return r.Definition.RightRepr(p), nil
	}
	return "", fmt.Errorf("%w: %s is neither the left nor right person of this %s relationship",
		ErrNotInRelationship, p.DisplayName(), r.Definition.Name)
}

// Other returns the person related to p.
func (r Relationship) Other(p person.Person) person.Person {
	if p.ID == r.Left.ID {
		return r.Right
	}
	return r.Left
}

// Link is a relationship as stored: persons by id, definition by name.
type Link struct {
	ID         personid.ID `bson:"id" json:"id"`
	Left       personid.ID `bson:"left" json:"left"`
	Right      personid.ID `bson:"right" json:"right"`
	Definition string      `bson:"definition" json:"definition"`
}

func (l Link) Involves(id personid.ID) bool {
	return l.Left == id || l.Right == id
}

// Between tells whether l relates a and b, in any order.
func (l Link) Between(a, b personid.ID) bool {
	return (l.Left == a && l.Right == b) || (l.Left == b && l.Right == a)
}

// Request is a parsed "<person> <alias> <person>" text.
type Request struct {
	// Written is the pattern of the person written before the alias,
	// Other the one after.
	Written    string
	Other      string
	Definition Definition
	Alias      Alias
}

// Parse finds the first alias of ds, in catalogue order, with a non-empty
// person pattern on each side.
func (ds Definitions) Parse(text string) (Request, bool) {
	for _, d := range ds {
		for _, a := range d.Aliases {
			before, after, found := strings.Cut(text, a.Name)
			if !found {
				continue
			}
			before, after = strings.TrimSpace(before), strings.TrimSpace(after)
			if before == "" || after == "" {
				continue
			}
			return Request{Written: before, Other: after, Definition: d, Alias: a}, true
		}
	}
	return Request{}, false
}

// Patterns returns the patterns of the left and right persons of the
// relationship.
func (r Request) Patterns() (left, right string) {
	if r.Alias.Reverse {
		return r.Other, r.Written
	}
	return r.Written, r.Other
}

// Sexes returns what the alias says about the left and right persons of the
// relationship.
func (r Request) Sexes() (left, right person.Sex) {
	if r.Alias.Reverse {
		return r.Alias.RightSex, r.Alias.LeftSex
	}
	return r.Alias.LeftSex, r.Alias.RightSex
}
