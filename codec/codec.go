// Package codec turns records into bytes and back for storage.
package codec

type (
	Encode[T any] func(value T) ([]byte, error)
	Decode[T any] func(data []byte) (T, error)
)

// Codec pairs an encoder with its decoder. Tag is the struct tag name the
// encoding reads field names from, used to resolve indexed fields.
type Codec[T any] struct {
	encode Encode[T]
	decode Decode[T]
	tag    string
}

func New[T any](encode Encode[T], decode Decode[T], tag string) Codec[T] {
	return Codec[T]{encode: encode, decode: decode, tag: tag}
}

func (c *Codec[T]) Encode(value T) ([]byte, error) {
	return c.encode(value)
}

func (c *Codec[T]) Decode(data []byte) (T, error) {
	return c.decode(data)
}

func (c *Codec[T]) Tag() string {
	return c.tag
}

// ByName returns the codec registered under name ("bson" or "json").
func ByName[T any](name string) (Codec[T], bool) {
	switch name {
	case bsonTag:
		return NewBsonCodec[T](), true
	case jsonTag:
		return NewJsonCodec[T](), true
	}
	return Codec[T]{}, false
}
