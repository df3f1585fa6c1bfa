package lms

import (
	"fmt"
	"slices"
	"strings"

	bval "lms/bvalue"
	"lms/person"
	"lms/personid"
	"lms/relationship"
	"lms/search"
)

// Definitions returns the relationship catalogue in use.
func (r *Registry) Definitions() relationship.Definitions {
	return r.defs
}

// Link relates left and right as the named definition says.
func (r *Registry) Link(left, right personid.ID, definition string) (relationship.Link, error) {
	if err := r.checkLink(left, right, definition); err != nil {
		return relationship.Link{}, err
	}

	l := relationship.Link{ID: r.linkIDs.Next(), Left: left, Right: right, Definition: definition}
	if err := r.links.Upsert(bval.FromID(l.ID), l); err != nil {
		return relationship.Link{}, fmt.Errorf("storing relationship %s: %w", l.ID, err)
	}
	r.log.Debug("persons linked", "id", l.ID, "left", left, "right", right, "relationship", definition)
	return l, nil
}

// PutLink registers a relationship that already has an id, e.g. one loaded
// from a file. Both persons must be registered first.
func (r *Registry) PutLink(l relationship.Link) error {
	if !l.ID.Valid() {
		return fmt.Errorf("relationship id %d: %w", l.ID, personid.ErrInvalid)
	}
	if err := issued(r.linkIDs, l.ID); err != nil {
		return err
	}
	pk := bval.FromID(l.ID)
	_, exists, err := r.links.Find(pk)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: relationship %s", ErrExists, l.ID)
	}
	if err := r.checkLink(l.Left, l.Right, l.Definition); err != nil {
		return fmt.Errorf("relationship %s: %w", l.ID, err)
	}

	if err := r.links.Upsert(pk, l); err != nil {
		return fmt.Errorf("storing relationship %s: %w", l.ID, err)
	}
	r.log.Debug("relationship loaded", "id", l.ID)
	return nil
}

func (r *Registry) checkLink(left, right personid.ID, definition string) error {
	if _, err := r.defs.ByName(definition); err != nil {
		return err
	}
	if left == right {
		return fmt.Errorf("%w: %s", ErrSelfLink, left)
	}
	for _, id := range []personid.ID{left, right} {
		if _, err := r.Metadata(id); err != nil {
			return err
		}
	}

	existing, err := r.LinksOf(left)
	if err != nil {
		return err
	}
	for _, l := range existing {
		if l.Left == left && l.Right == right && l.Definition == definition {
			return fmt.Errorf("%w: %s is already %s of %s", ErrExists, left, definition, right)
		}
	}
	return nil
}

// Relate links the persons req designates and sets the sexes its alias
// implies. It returns the relationship and the persons whose sex changed.
func (r *Registry) Relate(req relationship.Request) (relationship.Relationship, []person.Person, error) {
	leftPattern, rightPattern := req.Patterns()
	left, err := r.Resolve(leftPattern)
	if err != nil {
		return relationship.Relationship{}, nil, err
	}
	right, err := r.Resolve(rightPattern)
	if err != nil {
		return relationship.Relationship{}, nil, err
	}
	if err := r.checkLink(left.ID, right.ID, req.Definition.Name); err != nil {
		return relationship.Relationship{}, nil, err
	}

	var changed []person.Person
	leftSex, rightSex := req.Sexes()
	for _, c := range []struct {
		p   *person.Person
		sex person.Sex
	}{{&left, leftSex}, {&right, rightSex}} {
		if c.sex == person.Unset || c.p.Sex == c.sex {
			continue
		}
		c.p.Sex = c.sex
		if err := r.Update(*c.p); err != nil {
			return relationship.Relationship{}, nil, err
		}
		changed = append(changed, *c.p)
	}

	if _, err := r.Link(left.ID, right.ID, req.Definition.Name); err != nil {
		return relationship.Relationship{}, nil, err
	}
	return relationship.Relationship{Left: left, Right: right, Definition: req.Definition}, changed, nil
}

// Unlink removes every relationship between a and b.
func (r *Registry) Unlink(a, b personid.ID) ([]relationship.Link, error) {
	links, err := r.LinksOf(a)
	if err != nil {
		return nil, err
	}

	removed := make([]relationship.Link, 0)
	for _, l := range links {
		if !l.Between(a, b) {
			continue
		}
		if _, err := r.links.Delete(bval.FromID(l.ID)); err != nil {
			return removed, fmt.Errorf("deleting relationship %s: %w", l.ID, err)
		}
		removed = append(removed, l)
	}
	r.log.Debug("persons unlinked", "a", a, "b", b, "relationships", len(removed))
	return removed, nil
}

// Links returns every relationship, by ascending id.
func (r *Registry) Links() ([]relationship.Link, error) {
	return r.links.Scan()
}

// LinksOf returns the relationships id takes part in, by ascending id.
func (r *Registry) LinksOf(id personid.ID) ([]relationship.Link, error) {
	asLeft, err := r.links.FindByIndex(leftField, bval.FromInt(id))
	if err != nil {
		return nil, err
	}
	asRight, err := r.links.FindByIndex(rightField, bval.FromInt(id))
	if err != nil {
		return nil, err
	}

	out := append(asLeft, asRight...)
	slices.SortFunc(out, func(a, b relationship.Link) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

// Relationships resolves the relationships of id.
func (r *Registry) Relationships(id personid.ID) ([]relationship.Relationship, error) {
	links, err := r.LinksOf(id)
	if err != nil {
		return nil, err
	}

	out := make([]relationship.Relationship, 0, len(links))
	for _, l := range links {
		rel, err := r.resolveLink(l)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

func (r *Registry) resolveLink(l relationship.Link) (relationship.Relationship, error) {
	def, err := r.defs.ByName(l.Definition)
	if err != nil {
		return relationship.Relationship{}, err
	}
	left, err := r.Get(l.Left)
	if err != nil {
		return relationship.Relationship{}, err
	}
	right, err := r.Get(l.Right)
	if err != nil {
		return relationship.Relationship{}, err
	}
	return relationship.Relationship{Left: left, Right: right, Definition: def}, nil
}

// Resolve finds the one person pattern designates: an id, else the persons
// whose display name is pattern, else those whose display name contains it.
func (r *Registry) Resolve(pattern string) (person.Person, error) {
	if id, err := personid.FromString(pattern); err == nil {
		return r.Get(id)
	}

	all, err := r.List()
	if err != nil {
		return person.Person{}, err
	}
	exact := search.Filter(all, func(p person.Person) bool { return p.DisplayName() == pattern })
	if len(exact) == 1 {
		return exact[0], nil
	}
	found := search.Filter(all, search.DisplayName(pattern))
	switch len(found) {
	case 0:
		return person.Person{}, fmt.Errorf("%w: no one matches %q", ErrNotFound, pattern)
	case 1:
		return found[0], nil
	}

	names := make([]string, len(found))
	for i, p := range found {
		names[i] = p.String()
	}
	return person.Person{}, fmt.Errorf("%w %q: %s", ErrAmbiguous, pattern, strings.Join(names, ", "))
}
