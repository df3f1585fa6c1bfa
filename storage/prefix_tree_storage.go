package storage

import (
	"slices"

	"github.com/s0rg/trie"
)

var _ Storage[[]byte] = (*prefixTreeStorage[[]byte])(nil)

// NewPrefixTreeStorage keeps values in a trie. Not safe for concurrent use.
func NewPrefixTreeStorage[V any]() *prefixTreeStorage[V] {
	return &prefixTreeStorage[V]{trie.New[V]()}
}

type prefixTreeStorage[V any] struct {
	inner *trie.Trie[V]
}

func (s *prefixTreeStorage[V]) Get(key string) (V, bool) {
	return s.inner.Find(key)
}

func (s *prefixTreeStorage[V]) Set(key string, value V) {
	s.inner.Add(key, value)
}

func (s *prefixTreeStorage[V]) Del(key string) {
	s.inner.Del(key)
}

func (s *prefixTreeStorage[V]) Range(prefix string) Range[string, V] {
	// the trie gives no order guarantee for suggestions
	keys, _ := s.inner.Suggest(prefix)
	slices.Sort(keys)
	return &sliceRange[V]{keys: keys, get: s.Get}
}

func (s *prefixTreeStorage[V]) ToMap() map[string]V {
	keys, _ := s.inner.Suggest("")
	out := make(map[string]V, len(keys))
	for _, k := range keys {
		v, _ := s.inner.Find(k)
		out[k] = v
	}

	return out
}
