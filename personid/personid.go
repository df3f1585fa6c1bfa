// Package personid holds person identifiers and the generators issuing them.
package personid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalid is returned when an id is not a positive integer.
var ErrInvalid = errors.New("person id must be a positive int32")

// keyWidth fits every positive int32. Keys are zero padded to it.
const keyWidth = 10

// MaxID is the greatest valid id, the widest one keyWidth holds.
const MaxID ID = math.MaxInt32

// An ID identifies a person within one store. Ordered, and compared for
// order with [ID.Less]. Valid ids are in 1..MaxID.
type ID int

func (id ID) Valid() bool {
	return id > 0 && id <= MaxID
}

func (id ID) Less(rhs ID) bool {
	return id < rhs
}

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Key renders the id zero padded, so storage keys sort the way ids do.
func (id ID) Key() string {
	return fmt.Sprintf("%0*d", keyWidth, int(id))
}

// FromString parses both String and Key forms.
func FromString(s string) (ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, ErrInvalid)
	}
	if id := ID(n); id.Valid() {
		return id, nil
	}
	return 0, fmt.Errorf("parsing %q: %w", s, ErrInvalid)
}

// Max returns the greatest of ids, or zero when there are none.
func Max(ids ...ID) ID {
	var greatest ID
	for _, id := range ids {
		if greatest.Less(id) {
			greatest = id
		}
	}
	return greatest
}
