package codec

import (
	"fmt"

	"gopkg.in/mgo.v2/bson"
)

const bsonTag = "bson"

func NewBsonCodec[T any]() Codec[T] {
	return New(BsonEncode[T], BsonDecode[T], bsonTag)
}

// BsonEncode marshals value as a BSON document. Only struct and map
// values are documents.
func BsonEncode[T any](value T) ([]byte, error) {
	data, err := bson.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("bson encode %T: %w", value, err)
	}
	return data, nil
}

func BsonDecode[T any](data []byte) (T, error) {
	var v T
	if err := bson.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("bson decode %T: %w", v, err)
	}
	return v, nil
}
