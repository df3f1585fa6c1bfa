package key

import (
	"errors"
	"fmt"
	bval "lms/bvalue"
	"strconv"
	"strings"
)

const (
	TypeRecord = "rec"
	TypeIndex  = "idx"

	// PrimaryKey is the field name of record keys. It can't be indexed.
	PrimaryKey = "pk"

	sep = "_"
)

var ErrMalformed = errors.New("provided string is not a valid key")

// Key addresses a value in storage.
//
// Record key layout:
// rec_{ns}_pk_{pk},
// Example:
// rec_persons_pk_0000000012.
//
// Index key layout, the indexed value is length prefixed so that any value,
// underscores included, maps to exactly one prefix:
// idx_{ns}_{field}_{len}:{value}_{pk},
// Example:
// idx_persons_firstname_4:John_0000000012.
type Key struct {
	// type of value stored ('rec' or 'idx')
	Type string
	// namespace
	Ns string
	// name of indexed field ('pk' for records)
	FieldName string
	// value of indexed field, empty for records
	FieldValue bval.Value
	// primary key of the record
	PK bval.Value
}

func (k Key) String() string {
	if k.Type == TypeRecord {
		return RecordPrefix(k.Ns) + k.PK.String()
	}
	return IndexPrefix(k.Ns, k.FieldName, k.FieldValue) + k.PK.String()
}

func Record(ns string, pk bval.Value) Key {
	return Key{Type: TypeRecord, Ns: ns, FieldName: PrimaryKey, PK: pk}
}

func Index(ns, field string, value, pk bval.Value) Key {
	return Key{Type: TypeIndex, Ns: ns, FieldName: field, FieldValue: value, PK: pk}
}

// RecordPrefix is shared by every record key of a namespace.
func RecordPrefix(ns string) string {
	return TypeRecord + sep + ns + sep + PrimaryKey + sep
}

// FieldPrefix is shared by every index key of one field.
func FieldPrefix(ns, field string) string {
	return TypeIndex + sep + ns + sep + field + sep
}

// IndexPrefix is shared by the index keys of records with the same value.
func IndexPrefix(ns, field string, value bval.Value) string {
	return FieldPrefix(ns, field) + strconv.Itoa(len(value)) + ":" + value.String() + sep
}

// ValidName reports whether s may be used as a namespace or field name.
func ValidName(s string) bool {
	return s != "" && !strings.Contains(s, sep)
}

func FromString(s string) (Key, error) {
	tokens := strings.SplitN(s, sep, 4)
	if len(tokens) != 4 {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	switch tokens[0] {
	case TypeRecord:
		if tokens[2] != PrimaryKey || tokens[3] == "" {
			return Key{}, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		return Record(tokens[1], bval.FromString(tokens[3])), nil
	case TypeIndex:
		value, pk, err := splitIndexed(tokens[3])
		if err != nil {
			return Key{}, fmt.Errorf("%w: %q", err, s)
		}
		return Index(tokens[1], tokens[2], value, pk), nil
	}

	return Key{}, fmt.Errorf("%w: unknown key type in %q", ErrMalformed, s)
}

// splitIndexed splits "{len}:{value}_{pk}".
func splitIndexed(s string) (bval.Value, bval.Value, error) {
	lenRaw, rest, ok := strings.Cut(s, ":")
	if !ok {
		return nil, nil, ErrMalformed
	}
	n, err := strconv.Atoi(lenRaw)
	if err != nil || n < 0 || n > len(rest) {
		return nil, nil, ErrMalformed
	}
	value, rest := rest[:n], rest[n:]
	pk, ok := strings.CutPrefix(rest, sep)
	if !ok || pk == "" {
		return nil, nil, ErrMalformed
	}
	return bval.FromString(value), bval.FromString(pk), nil
}
