// Package search filters person records. Filtering is case-sensitive and
// keeps the order records were given in.
package search

import (
	"strings"

	"lms/person"
)

// Matcher decides whether a person is part of a result.
type Matcher func(person.Person) bool

// Firstname matches persons whose firstname contains query. The empty
// query matches everyone.
func Firstname(query string) Matcher {
	return func(p person.Person) bool {
		return strings.Contains(p.Firstname, query)
	}
}

// DisplayName matches against "firstname lastname".
func DisplayName(query string) Matcher {
	return func(p person.Person) bool {
		return strings.Contains(p.DisplayName(), query)
	}
}

func Filter(records []person.Person, match Matcher) []person.Person {
	out := make([]person.Person, 0, len(records))
	for _, p := range records {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the records whose firstname contains query.
func Search(records []person.Person, query string) []person.Person {
	return Filter(records, Firstname(query))
}
