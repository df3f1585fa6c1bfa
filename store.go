package lms

import (
	bval "lms/bvalue"
	"lms/collection"
)

var (
	_ Store[any] = (*collection.Store[any])(nil)
	_ Indexer    = (*collection.Store[any])(nil)
)

// Store is a namespace of records addressed by primary key.
type Store[R any] interface {
	Find(pk bval.Value) (R, bool, error)
	FindByIndex(name string, value bval.Value) ([]R, error)
	Upsert(pk bval.Value, record R) error
	Delete(pk bval.Value) (bool, error)
	Scan() ([]R, error)
	PrimaryKeys() ([]bval.Value, error)
	Len() int
}

type Indexer interface {
	AddIndex(fieldName string) error
}
