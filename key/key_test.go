package key

import (
	bval "lms/bvalue"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordKey(t *testing.T) {
	// arrange
	k := Record("persons", bval.FromString("0000000012"))

	// act
	raw := k.String()
	parsed, err := FromString(raw)

	// assert
	assert.Equal(t, "rec_persons_pk_0000000012", raw)
	assert.NoError(t, err)
	assert.Equal(t, k, parsed)
}

func TestIndexKeyWithUnderscores(t *testing.T) {
	// arrange
	k := Index("persons", "firstname", bval.FromString("fn_1"), bval.FromString("0000000001"))

	// act
	raw := k.String()
	parsed, err := FromString(raw)

	// assert
	assert.Equal(t, "idx_persons_firstname_4:fn_1_0000000001", raw)
	assert.NoError(t, err)
	assert.Equal(t, k, parsed)
}

func TestIndexPrefixIsExact(t *testing.T) {
	short := IndexPrefix("persons", "firstname", bval.FromString("fn1"))
	long := Index("persons", "firstname", bval.FromString("fn1_x"), bval.FromString("1")).String()

	assert.NotContains(t, long, short)
}

func TestFromStringMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"rec_persons",
		"rec_persons_name_1",
		"rec_persons_pk_",
		"ptr_persons_pk_1",
		"idx_persons_firstname_3fn1_1",
		"idx_persons_firstname_9:fn1_1",
		"idx_persons_firstname_3:fn1",
	} {
		_, err := FromString(s)
		assert.ErrorIs(t, err, ErrMalformed, s)
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("persons"))
	assert.False(t, ValidName("my_persons"))
	assert.False(t, ValidName(""))
}
