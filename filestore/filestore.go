// Package filestore persists persons as a JSON array in a single file.
//
// Entries look like
//
//	{"id": 1, "firstname": "Jim", "lastname": "Morisson", "created": "2024-04-05 12:41:09"}
//
// lastname is left out when absent and sex when unset. created is a local
// wall clock time, as written by str(datetime.now()), with microseconds
// when there are any.
//
// Relationships are kept in a second file, see [LoadLinks].
package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"lms/codec"
	"lms/person"
	"lms/personid"

	"github.com/samber/mo"
)

// DefaultPath is used when no file is configured.
const DefaultPath = "persons.db"

// DefaultLinksPath is used when no relationships file is configured.
const DefaultLinksPath = "relationships.db"

const createdLayout = "2006-01-02 15:04:05"

var ErrEmpty = errors.New("can't store an empty list of persons")

type entry struct {
	ID        int    `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname,omitempty"`
	Sex       string `json:"sex,omitempty"`
	Created   string `json:"created,omitempty"`
}

var entries = codec.NewJsonCodec[[]entry]()

// Load reads every person from path. A missing or empty file holds no one.
func Load(path string) ([]person.Metadata, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []person.Metadata{}, nil
	}

	raw, err := entries.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	out := make([]person.Metadata, 0, len(raw))
	for i, e := range raw {
		m, err := e.metadata()
		if err != nil {
			return nil, fmt.Errorf("entry %d of %s: %w", i, path, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Save replaces the content of path with persons.
func Save(path string, persons []person.Metadata) error {
	if len(persons) == 0 {
		return ErrEmpty
	}

	raw := make([]entry, len(persons))
	for i, m := range persons {
		raw[i] = fromMetadata(m)
	}
	data, err := entries.Encode(raw)
	if err != nil {
		return fmt.Errorf("encoding persons: %w", err)
	}
	return replace(path, data)
}

// read returns nil for a missing or blank file.
func read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

// replace writes data next to path first and renames it over path.
func replace(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Remove deletes path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func fromMetadata(m person.Metadata) entry {
	e := entry{
		ID:        int(m.ID),
		Firstname: m.Firstname,
		Lastname:  m.Lastname.OrElse(""),
	}
	if m.Sex != person.Unset {
		e.Sex = m.Sex.String()
	}
	if !m.Created.IsZero() {
		e.Created = FormatCreated(m.Created)
	}
	return e
}

func (e entry) metadata() (person.Metadata, error) {
	if e.Firstname == "" {
		return person.Metadata{}, fmt.Errorf("missing field 'firstname': %w", person.ErrInvalidPerson)
	}
	sex, err := person.ParseSex(e.Sex)
	if err != nil {
		return person.Metadata{}, err
	}
	lastname := mo.None[string]()
	if e.Lastname != "" {
		lastname = mo.Some(e.Lastname)
	}
	p, err := person.New(personid.ID(e.ID), e.Firstname, lastname, sex)
	if err != nil {
		return person.Metadata{}, err
	}

	m := person.Metadata{Person: p}
	if e.Created != "" {
		if m.Created, err = ParseCreated(e.Created); err != nil {
			return person.Metadata{}, err
		}
	}
	return m, nil
}

// FormatCreated renders t in local time, with microseconds only when
// non-zero.
func FormatCreated(t time.Time) string {
	t = t.Local()
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(createdLayout + ".000000")
	}
	return t.Format(createdLayout)
}

// ParseCreated reads FormatCreated output as local time, fractional
// seconds optional. The result is in UTC.
func ParseCreated(s string) (time.Time, error) {
	t, err := time.ParseInLocation(createdLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
