package person

import (
	"encoding/json"
	"fmt"
	"time"

	"lms/personid"

	"github.com/samber/mo"
	"gopkg.in/mgo.v2/bson"
)

// document is the encoded layout shared by bson and json. Absent lastname
// and unset sex are left out. created is RFC 3339 text with nanoseconds,
// BSON datetimes only keep milliseconds.
type document struct {
	ID        int    `bson:"id" json:"id"`
	Firstname string `bson:"firstname" json:"firstname"`
	Lastname  string `bson:"lastname,omitempty" json:"lastname,omitempty"`
	Sex       string `bson:"sex,omitempty" json:"sex,omitempty"`
	Created   string `bson:"created,omitempty" json:"created,omitempty"`
}

func (p Person) document() document {
	d := document{
		ID:        int(p.ID),
		Firstname: p.Firstname,
		Lastname:  p.Lastname.OrElse(""),
	}
	if p.Sex != Unset {
		d.Sex = p.Sex.String()
	}
	return d
}

func (d document) person() (Person, error) {
	sex, err := ParseSex(d.Sex)
	if err != nil {
		return Person{}, err
	}
	lastname := mo.None[string]()
	if d.Lastname != "" {
		lastname = mo.Some(d.Lastname)
	}
	return New(personid.ID(d.ID), d.Firstname, lastname, sex)
}

func (p Person) GetBSON() (interface{}, error) {
	return p.document(), nil
}

func (p *Person) SetBSON(raw bson.Raw) error {
	var d document
	if err := raw.Unmarshal(&d); err != nil {
		return err
	}
	decoded, err := d.person()
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func (p Person) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.document())
}

func (p *Person) UnmarshalJSON(data []byte) error {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	decoded, err := d.person()
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Metadata shadows the methods promoted from Person so that Created is
// encoded too.

func (m Metadata) document() document {
	d := m.Person.document()
	if !m.Created.IsZero() {
		d.Created = m.Created.UTC().Format(time.RFC3339Nano)
	}
	return d
}

func (m *Metadata) fromDocument(d document) error {
	p, err := d.person()
	if err != nil {
		return err
	}
	m.Person = p
	m.Created = time.Time{}
	if d.Created != "" {
		created, err := time.Parse(time.RFC3339Nano, d.Created)
		if err != nil {
			return fmt.Errorf("invalid created time %q: %w", d.Created, err)
		}
		m.Created = created.UTC()
	}
	return nil
}

func (m Metadata) GetBSON() (interface{}, error) {
	return m.document(), nil
}

func (m *Metadata) SetBSON(raw bson.Raw) error {
	var d document
	if err := raw.Unmarshal(&d); err != nil {
		return err
	}
	return m.fromDocument(d)
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.document())
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	return m.fromDocument(d)
}
