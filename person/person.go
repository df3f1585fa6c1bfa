// Package person defines the person record kept by the store.
package person

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"lms/personid"

	"github.com/samber/mo"
)

var ErrInvalidPerson = errors.New("invalid person")

// Person is immutable once created; updates replace the whole record.
type Person struct {
	ID        personid.ID       `bson:"id" json:"id"`
	Firstname string            `bson:"firstname" json:"firstname"`
	Lastname  mo.Option[string] `bson:"lastname" json:"lastname"`
	Sex       Sex               `bson:"sex" json:"sex"`
}

// New validates its input. An empty lastname is the same as no lastname.
func New(id personid.ID, firstname string, lastname mo.Option[string], sex Sex) (Person, error) {
	if ln, ok := lastname.Get(); ok && ln == "" {
		lastname = mo.None[string]()
	}

	p := Person{ID: id, Firstname: firstname, Lastname: lastname, Sex: sex}
	if err := p.Validate(); err != nil {
		return Person{}, err
	}
	return p, nil
}

func (p Person) Validate() error {
	if !p.ID.Valid() {
		return fmt.Errorf("%w: id %d is out of range", ErrInvalidPerson, p.ID)
	}
	if p.Firstname == "" {
		return fmt.Errorf("%w: firstname can't be empty", ErrInvalidPerson)
	}
	if !utf8.ValidString(p.Firstname) {
		return fmt.Errorf("%w: firstname %q is not valid UTF-8", ErrInvalidPerson, p.Firstname)
	}
	if ln, ok := p.Lastname.Get(); ok && !utf8.ValidString(ln) {
		return fmt.Errorf("%w: lastname %q is not valid UTF-8", ErrInvalidPerson, ln)
	}
	return nil
}

func (p Person) DisplayName() string {
	if ln, ok := p.Lastname.Get(); ok {
		return p.Firstname + " " + ln
	}
	return p.Firstname
}

func (p Person) String() string {
	return "(" + p.ID.String() + ") " + p.DisplayName()
}

// Metadata is a person as stored, along with bookkeeping that does not
// take part in comparing persons.
type Metadata struct {
	Person
	Created time.Time `bson:"created" json:"created"`
}

func IDs(persons []Person) []personid.ID {
	ids := make([]personid.ID, len(persons))
	for i, p := range persons {
		ids[i] = p.ID
	}
	return ids
}

func Persons(metas []Metadata) []Person {
	out := make([]Person, len(metas))
	for i, m := range metas {
		out[i] = m.Person
	}
	return out
}
