package collection

import (
	"errors"
	"fmt"
	bval "lms/bvalue"
	"lms/codec"
	"lms/internal"
	"lms/key"
	"lms/storage"
	"slices"
)

var (
	ErrNoIndex      = errors.New("no index on field")
	ErrUnknownField = errors.New("cannot add index for non-existing field")
)

// Store is a namespace of records of type R inside a shared storage.
// Records are kept under their primary key, secondary indices map field
// values back to record keys.
type Store[R any] struct {
	name    string
	storage storage.Storage[[]byte]
	codec   codec.Codec[R]
	indices []string
}

func New[R any](
	ns string,
	storage storage.Storage[[]byte],
	codec codec.Codec[R],
) (*Store[R], error) {
	if !key.ValidName(ns) {
		return nil, fmt.Errorf("invalid namespace %q", ns)
	}
	var val R
	if _, err := codec.Encode(val); err != nil {
		return nil, fmt.Errorf("cannot create Store since the record type is not serializable: %w", err)
	}
	return &Store[R]{name: ns, storage: storage, codec: codec}, nil
}

func (s *Store[R]) Name() string {
	return s.name
}

// Upsert stores record under pk, replacing and reindexing any previous one.
func (s *Store[R]) Upsert(pk bval.Value, record R) error {
	recb, err := s.codec.Encode(record)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", pk, err)
	}
	values, err := s.indexValues(record)
	if err != nil {
		return err
	}

	old, ok, err := s.Find(pk)
	if err != nil {
		return err
	}
	if ok {
		if err := s.unindex(pk, old); err != nil {
			return err
		}
	}

	recKey := key.Record(s.name, pk).String()
	s.storage.Set(recKey, recb)
	for i, field := range s.indices {
		// index is basically "a pointer" to the PK key
		idxKey := key.Index(s.name, field, bval.FromString(values[i]), pk)
		s.storage.Set(idxKey.String(), bval.FromString(recKey))
	}
	return nil
}

func (s *Store[R]) Delete(pk bval.Value) (bool, error) {
	old, ok, err := s.Find(pk)
	if err != nil || !ok {
		return false, err
	}
	if err := s.unindex(pk, old); err != nil {
		return false, err
	}
	s.storage.Del(key.Record(s.name, pk).String())
	return true, nil
}

func (s *Store[R]) Find(pk bval.Value) (R, bool, error) {
	return internal.Find(s.storage, s.codec, key.Record(s.name, pk).String())
}

// Scan decodes every record, in primary key order.
func (s *Store[R]) Scan() ([]R, error) {
	out := make([]R, 0)
	rng := s.storage.Range(key.RecordPrefix(s.name))
	for rng.Next() {
		k, recb := rng.Value()
		rec, err := s.codec.Decode(recb)
		if err != nil {
			return nil, fmt.Errorf("decoding record %s: %w", k, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// PrimaryKeys lists primary keys in order.
func (s *Store[R]) PrimaryKeys() ([]bval.Value, error) {
	raw := internal.Keys(s.storage, key.RecordPrefix(s.name))
	pks := make([]bval.Value, 0, len(raw))
	for _, r := range raw {
		k, err := key.FromString(r)
		if err != nil {
			return nil, fmt.Errorf("incorrect storage key format: %w", err)
		}
		pks = append(pks, k.PK)
	}
	return pks, nil
}

func (s *Store[R]) Len() int {
	return len(internal.Keys(s.storage, key.RecordPrefix(s.name)))
}

// AddIndex indexes a string or integer field, named as the codec's struct
// tag names it. Existing records are indexed right away.
func (s *Store[R]) AddIndex(fieldName string) error {
	if !key.ValidName(fieldName) || fieldName == key.PrimaryKey {
		return fmt.Errorf("invalid index name %q", fieldName)
	}
	if slices.Contains(s.indices, fieldName) {
		return nil
	}

	var zero R
	field, ok := internal.FieldValueByTag(zero, s.codec.Tag(), fieldName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldName)
	}
	// check index field type: only allow integers and strings
	if _, ok := internal.Indexable(field); !ok {
		return fmt.Errorf("indices are only supported for integer and string fields, %s is %s", fieldName, field.Kind())
	}

	rng := s.storage.Range(key.RecordPrefix(s.name))
	for rng.Next() {
		recKey, recb := rng.Value()

		// decode record into comprehensible type and find field's value
		rec, err := s.codec.Decode(recb)
		if err != nil {
			return fmt.Errorf("decoding record %s when adding index: %w", recKey, err)
		}
		value, err := s.fieldValue(rec, fieldName)
		if err != nil {
			return err
		}
		k, err := key.FromString(recKey)
		if err != nil {
			return fmt.Errorf("incorrect storage key format: %w", err)
		}

		idxKey := key.Index(s.name, fieldName, bval.FromString(value), k.PK)
		s.storage.Set(idxKey.String(), bval.FromString(recKey))
	}

	s.indices = append(s.indices, fieldName)
	return nil
}

// FindByIndex returns the records whose field equals value, in primary
// key order.
func (s *Store[R]) FindByIndex(fieldName string, value bval.Value) ([]R, error) {
	if !slices.Contains(s.indices, fieldName) {
		return nil, fmt.Errorf("%w %s", ErrNoIndex, fieldName)
	}

	out := make([]R, 0)
	rng := s.storage.Range(key.IndexPrefix(s.name, fieldName, value))
	for rng.Next() {
		idxKey, recKey := rng.Value()
		rec, ok, err := internal.Find(s.storage, s.codec, string(recKey))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("index entry %s points to missing record %s", idxKey, recKey)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store[R]) indexValues(record R) ([]string, error) {
	values := make([]string, len(s.indices))
	for i, field := range s.indices {
		v, err := s.fieldValue(record, field)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (s *Store[R]) fieldValue(record R, fieldName string) (string, error) {
	field, ok := internal.FieldValueByTag(record, s.codec.Tag(), fieldName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, fieldName)
	}
	value, ok := internal.Indexable(field)
	if !ok {
		return "", fmt.Errorf("field %s is not indexable", fieldName)
	}
	return value, nil
}

func (s *Store[R]) unindex(pk bval.Value, old R) error {
	values, err := s.indexValues(old)
	if err != nil {
		return err
	}
	for i, field := range s.indices {
		s.storage.Del(key.Index(s.name, field, bval.FromString(values[i]), pk).String())
	}
	return nil
}
