package lms

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	bval "lms/bvalue"
	"lms/codec"
	"lms/person"
	"lms/personid"
	"lms/relationship"
	"lms/search"

	"github.com/samber/mo"
)

// Namespace is the collection persons are kept in.
const Namespace = "persons"

// LinksNamespace is the collection relationships are kept in.
const LinksNamespace = "links"

const (
	firstnameField = "firstname"
	leftField      = "left"
	rightField     = "right"
)

var (
	ErrNotFound = errors.New("person not found")
	ErrExists   = errors.New("already exists")
	// ErrIDNotIssued is returned when a stored id could still be handed
	// out by the id issuer, which would break uniqueness.
	ErrIDNotIssued = errors.New("id is not accounted for by the id issuer")
	ErrSelfLink    = errors.New("a person can't be related to themselves")
	ErrAmbiguous   = errors.New("several persons match")
)

// Registry owns the person records of a database, the relationships
// between them, and assigns their ids. It is not safe for concurrent use.
type Registry struct {
	store   Store[person.Metadata]
	links   Store[relationship.Link]
	ids     personid.Issuer
	linkIDs personid.Issuer
	defs    relationship.Definitions
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithDefinitions replaces the relationship catalogue.
func WithDefinitions(defs relationship.Definitions) Option {
	return func(r *Registry) { r.defs = defs }
}

// WithLinkIDs sets the issuer of relationship ids. It must have been
// seeded with the ids of loaded relationships.
func WithLinkIDs(ids personid.Issuer) Option {
	return func(r *Registry) { r.linkIDs = ids }
}

// NewRegistry uses ids for every person it creates. When db already holds
// persons, ids must have been seeded with their ids. Relationships are
// encoded the way c encodes persons.
func NewRegistry(
	db *Database,
	c codec.Codec[person.Metadata],
	ids personid.Issuer,
	opts ...Option,
) (*Registry, error) {
	r := &Registry{
		ids:     ids,
		linkIDs: personid.NewAtomicGenerator(1, nil),
		defs:    relationship.Defaults(),
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.defs.Validate(); err != nil {
		return nil, err
	}

	persons, err := UseCollection(db, c, Namespace)
	if err != nil {
		return nil, err
	}
	if err := persons.AddIndex(firstnameField); err != nil {
		return nil, fmt.Errorf("indexing persons: %w", err)
	}

	lc, ok := codec.ByName[relationship.Link](c.Tag())
	if !ok {
		return nil, fmt.Errorf("no %s codec for relationships", c.Tag())
	}
	links, err := UseCollection(db, lc, LinksNamespace)
	if err != nil {
		return nil, err
	}
	for _, field := range []string{leftField, rightField} {
		if err := links.AddIndex(field); err != nil {
			return nil, fmt.Errorf("indexing relationships: %w", err)
		}
	}

	r.store, r.links = persons, links
	r.log.Debug("registry ready", "persons", persons.Name(), "relationships", links.Name(), "codec", c.Tag())
	return r, nil
}

// Create registers a new person under the next id.
func (r *Registry) Create(firstname string, lastname mo.Option[string], sex person.Sex) (person.Person, error) {
	p, err := person.New(r.ids.Next(), firstname, lastname, sex)
	if err != nil {
		return person.Person{}, err
	}

	m := person.Metadata{Person: p, Created: r.now().UTC().Truncate(time.Microsecond)}
	if err := r.store.Upsert(bval.FromID(p.ID), m); err != nil {
		return person.Person{}, fmt.Errorf("storing person %s: %w", p.ID, err)
	}

	r.log.Debug("person created", "id", p.ID, "name", p.DisplayName())
	return p, nil
}

// Put registers a person that already has an id, e.g. one loaded from a
// file.
func (r *Registry) Put(m person.Metadata) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := issued(r.ids, m.ID); err != nil {
		return err
	}

	pk := bval.FromID(m.ID)
	_, exists, err := r.store.Find(pk)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, m.ID)
	}

	if err := r.store.Upsert(pk, m); err != nil {
		return fmt.Errorf("storing person %s: %w", m.ID, err)
	}
	r.log.Debug("person loaded", "id", m.ID)
	return nil
}

func (r *Registry) Metadata(id personid.ID) (person.Metadata, error) {
	m, ok, err := r.store.Find(bval.FromID(id))
	if err != nil {
		return person.Metadata{}, err
	}
	if !ok {
		return person.Metadata{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, nil
}

func (r *Registry) Get(id personid.ID) (person.Person, error) {
	m, err := r.Metadata(id)
	return m.Person, err
}

// Update replaces the names and sex of an existing person.
func (r *Registry) Update(p person.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m, err := r.Metadata(p.ID)
	if err != nil {
		return err
	}

	m.Person = p
	if err := r.store.Upsert(bval.FromID(p.ID), m); err != nil {
		return fmt.Errorf("storing person %s: %w", p.ID, err)
	}
	r.log.Debug("person updated", "id", p.ID, "name", p.DisplayName())
	return nil
}

// Delete removes a person and their relationships. Its id is never handed
// out again.
func (r *Registry) Delete(id personid.ID) (bool, error) {
	ok, err := r.store.Delete(bval.FromID(id))
	if err != nil {
		return false, fmt.Errorf("deleting person %s: %w", id, err)
	}
	if !ok {
		return false, nil
	}

	links, err := r.LinksOf(id)
	if err != nil {
		return true, err
	}
	for _, l := range links {
		if _, err := r.links.Delete(bval.FromID(l.ID)); err != nil {
			return true, fmt.Errorf("deleting relationship %s: %w", l.ID, err)
		}
	}
	r.log.Debug("person deleted", "id", id, "relationships", len(links))
	return true, nil
}

// All returns every stored person, by ascending id.
func (r *Registry) All() ([]person.Metadata, error) {
	return r.store.Scan()
}

// List returns every person, by ascending id.
func (r *Registry) List() ([]person.Person, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	return person.Persons(all), nil
}

func (r *Registry) IDs() ([]personid.ID, error) {
	pks, err := r.store.PrimaryKeys()
	if err != nil {
		return nil, err
	}
	ids := make([]personid.ID, len(pks))
	for i, pk := range pks {
		if ids[i], err = personid.FromString(pk.String()); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (r *Registry) Len() int {
	return r.store.Len()
}

// Search returns the persons whose firstname contains query, by id.
func (r *Registry) Search(query string) ([]person.Person, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	found := search.Search(all, query)
	r.log.Debug("persons searched", "query", query, "total", len(all), "found", len(found))
	return found, nil
}

func (r *Registry) Filter(match search.Matcher) ([]person.Person, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	found := search.Filter(all, match)
	r.log.Debug("persons filtered", "total", len(all), "found", len(found))
	return found, nil
}

// FindByFirstname looks persons up by exact firstname.
func (r *Registry) FindByFirstname(firstname string) ([]person.Person, error) {
	found, err := r.store.FindByIndex(firstnameField, bval.FromString(firstname))
	if err != nil {
		return nil, err
	}
	return person.Persons(found), nil
}

// issued fails when ids could still hand out id.
func issued(ids personid.Issuer, id personid.ID) error {
	if peeker, ok := ids.(interface{ Peek() personid.ID }); ok && !id.Less(peeker.Peek()) {
		return fmt.Errorf("%w: %s", ErrIDNotIssued, id)
	}
	return nil
}
