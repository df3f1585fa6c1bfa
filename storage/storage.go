package storage

// Storage is an ordered key–value space. Range visits keys with a given
// prefix in ascending key order.
type Storage[V any] interface {
	Get(string) (V, bool)
	Set(string, V)
	Del(string)
	Range(prefix string) Range[string, V]
	ToMap() map[string]V
}

type Range[K comparable, V any] interface {
	Next() bool
	Value() (K, V)
}

// ByName returns the backend registered under name ("trie" or "skipmap").
func ByName[V any](name string) (Storage[V], bool) {
	switch name {
	case "trie":
		return NewPrefixTreeStorage[V](), true
	case "skipmap":
		return NewSkipMapStorage[V](), true
	}
	return nil, false
}

// sliceRange iterates over a snapshot of keys, resolving values lazily.
type sliceRange[V any] struct {
	keys []string
	curr int
	get  func(string) (V, bool)
}

func (r *sliceRange[V]) Value() (string, V) {
	key := r.keys[r.curr]
	r.curr++

	// SAFETY: the key is from r.keys array which
	// the inner storage gave us, we can assume this key exists
	value, _ := r.get(key)
	return key, value
}

func (r *sliceRange[V]) Next() bool {
	return r.curr < len(r.keys)
}
