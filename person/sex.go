package person

import (
	"fmt"
	"strings"
)

type Sex int

const (
	Unset Sex = iota
	Male
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "MALE"
	case Female:
		return "FEMALE"
	default:
		return "UNSET"
	}
}

// ParseSex accepts names in any case. Empty means Unset.
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UNSET":
		return Unset, nil
	case "MALE":
		return Male, nil
	case "FEMALE":
		return Female, nil
	}
	return Unset, fmt.Errorf("unknown sex %q: must be one of MALE, FEMALE, UNSET", s)
}
