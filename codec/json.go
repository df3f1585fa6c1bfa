package codec

import (
	"encoding/json"
	"fmt"
)

const jsonTag = "json"

func NewJsonCodec[T any]() Codec[T] {
	return New(JsonEncode[T], JsonDecode[T], jsonTag)
}

func JsonEncode[T any](value T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("json encode %T: %w", value, err)
	}
	return data, nil
}

func JsonDecode[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("json decode %T: %w", v, err)
	}
	return v, nil
}
