package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Title string `bson:"title" json:"title"`
	Price int    `bson:"price" json:"price"`
}

func TestCodecs(t *testing.T) {
	for _, name := range []string{"bson", "json"} {
		t.Run(name, func(t *testing.T) {
			// arrange
			c, ok := ByName[item](name)
			require.True(t, ok)
			in := item{"чайник", 1000}

			// act
			b, encErr := c.Encode(in)
			out, decErr := c.Decode(b)

			// assert
			assert.NoError(t, encErr)
			assert.NoError(t, decErr)
			assert.Equal(t, in, out)
			assert.Equal(t, name, c.Tag())
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, ok := ByName[item]("yaml")

	assert.False(t, ok)
}

func TestBsonRejectsNonDocument(t *testing.T) {
	c := NewBsonCodec[int]()

	_, err := c.Encode(42)

	assert.Error(t, err)
}
