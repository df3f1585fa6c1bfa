// Package relationship describes how two persons are related and reads
// requests written as "<person> <alias> <person>", e.g. "Jim father of Bob".
package relationship

import (
	"errors"
	"fmt"
	"strings"

	"lms/person"
)

var (
	ErrUnknownDefinition = errors.New("unknown relationship")
	ErrInvalidDefinition = errors.New("invalid relationship definition")
)

// Alias is a way of writing a relationship in a request.
type Alias struct {
	Name string
	// LeftSex and RightSex are what the alias says about the persons
	// written left and right of it. Unset says nothing.
	LeftSex  person.Sex
	RightSex person.Sex
	// Reverse aliases are written with the right person of the
	// relationship first: "Bob son of Jim".
	Reverse bool
}

// Definition is a kind of relationship between a left and a right person.
type Definition struct {
	Name    string
	Aliases []Alias
	// LeftDefault and RightDefault describe a person when no alias fits.
	// The definition name is used when they are empty.
	LeftDefault  string
	RightDefault string
}

// LeftRepr describes p as the left person of the relationship: the first
// forward alias whose left sex is p's.
func (d Definition) LeftRepr(p person.Person) string {
	return d.repr(p, false, d.LeftDefault)
}

// RightRepr describes p as the right person: the first reverse alias whose
// left sex is p's.
func (d Definition) RightRepr(p person.Person) string {
	return d.repr(p, true, d.RightDefault)
}

func (d Definition) repr(p person.Person, reverse bool, fallback string) string {
	for _, a := range d.Aliases {
		if a.Reverse == reverse && a.LeftSex == p.Sex {
			return a.Name
		}
	}
	if fallback != "" {
		return fallback
	}
	return d.Name
}

// Definitions is an ordered catalogue. Earlier definitions win when
// parsing a request.
type Definitions []Definition

func (ds Definitions) ByName(name string) (Definition, error) {
	for _, d := range ds {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownDefinition, name)
}

// Validate checks names are set and unique and that each alias belongs to a
// single definition.
func (ds Definitions) Validate() error {
	names := make(map[string]bool, len(ds))
	aliases := make(map[string]string)
	for _, d := range ds {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidDefinition)
		}
		if names[d.Name] {
			return fmt.Errorf("%w: %q defined twice", ErrInvalidDefinition, d.Name)
		}
		names[d.Name] = true

		for _, a := range d.Aliases {
			if strings.TrimSpace(a.Name) == "" {
				return fmt.Errorf("%w: empty alias in %q", ErrInvalidDefinition, d.Name)
			}
			if owner, ok := aliases[a.Name]; ok && owner != d.Name {
				return fmt.Errorf("%w: alias %q used by %q and %q", ErrInvalidDefinition, a.Name, owner, d.Name)
			}
			aliases[a.Name] = d.Name
		}
	}
	return nil
}

// Defaults returns the built-in family relationships.
func Defaults() Definitions {
	return Definitions{
		{
			Name: "parent",
			Aliases: []Alias{
				{Name: "father of", LeftSex: person.Male},
				{Name: "mother of", LeftSex: person.Female},
				{Name: "parent of"},
				{Name: "son of", LeftSex: person.Male, Reverse: true},
				{Name: "daughter of", LeftSex: person.Female, Reverse: true},
				{Name: "child of", Reverse: true},
			},
			LeftDefault:  "parent of",
			RightDefault: "child of",
		},
		symmetric("sibling", "brother of", "sister of", "sibling of"),
		symmetric("spouse", "husband of", "wife of", "spouse of"),
	}
}

// symmetric defines a relationship written the same way from both sides.
func symmetric(name, male, female, neutral string) Definition {
	forward := []Alias{
		{Name: male, LeftSex: person.Male},
		{Name: female, LeftSex: person.Female},
		{Name: neutral},
	}
	aliases := make([]Alias, 0, 2*len(forward))
	aliases = append(aliases, forward...)
	for _, a := range forward {
		a.Reverse = true
		aliases = append(aliases, a)
	}
	return Definition{Name: name, Aliases: aliases, LeftDefault: neutral, RightDefault: neutral}
}
