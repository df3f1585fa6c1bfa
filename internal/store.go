package internal

import (
	"fmt"
	"lms/codec"
	"lms/storage"
)

// Find decodes the record stored under key.
func Find[R any](storage storage.Storage[[]byte], codec codec.Codec[R], key string) (R, bool, error) {
	var r R
	recb, ok := storage.Get(key)
	if !ok {
		return r, false, nil
	}

	rec, err := codec.Decode(recb)
	if err != nil {
		return r, false, fmt.Errorf("decoding record %s: %w", key, err)
	}
	return rec, true, nil
}

// Keys collects every key under prefix, in storage order.
func Keys[V any](storage storage.Storage[V], prefix string) []string {
	var keys []string
	rng := storage.Range(prefix)
	for rng.Next() {
		k, _ := rng.Value()
		keys = append(keys, k)
	}
	return keys
}
