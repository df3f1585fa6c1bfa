package lms

import (
	"lms/codec"
	"lms/collection"
	"lms/storage"
)

// Database is a storage shared by any number of collections.
type Database struct {
	storage storage.Storage[[]byte]
}

func NewDatabase(stg storage.Storage[[]byte]) Database {
	return Database{stg}
}

func UseCollection[R any](db *Database, codec codec.Codec[R], ns string) (*collection.Store[R], error) {
	return collection.New(ns, db.storage, codec)
}

// Dump copies every raw key and value of the storage.
func (db *Database) Dump() map[string][]byte {
	return db.storage.ToMap()
}
