package storage

import (
	"strings"

	"github.com/zhangyunhao116/skipmap"
)

var _ Storage[[]byte] = (*skipMapStorage[[]byte])(nil)

// NewSkipMapStorage keeps values in a lock-free skip list, already sorted
// by key. Safe for concurrent use.
func NewSkipMapStorage[V any]() *skipMapStorage[V] {
	return &skipMapStorage[V]{skipmap.NewString[V]()}
}

type skipMapStorage[V any] struct {
	inner *skipmap.StringMap[V]
}

func (s *skipMapStorage[V]) Get(key string) (V, bool) {
	return s.inner.Load(key)
}

func (s *skipMapStorage[V]) Set(key string, value V) {
	s.inner.Store(key, value)
}

func (s *skipMapStorage[V]) Del(key string) {
	s.inner.Delete(key)
}

func (s *skipMapStorage[V]) Range(prefix string) Range[string, V] {
	keys := make([]string, 0)
	s.inner.Range(func(key string, _ V) bool {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
			return true
		}
		// keys come sorted, nothing past the prefix can match anymore
		return key < prefix
	})
	return &sliceRange[V]{keys: keys, get: s.Get}
}

func (s *skipMapStorage[V]) ToMap() map[string]V {
	out := make(map[string]V, s.inner.Len())
	s.inner.Range(func(key string, value V) bool {
		out[key] = value
		return true
	})
	return out
}
