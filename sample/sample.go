// Package sample generates the mock persons shown by the demo app.
package sample

import (
	"strconv"

	"lms/person"
	"lms/personid"

	"github.com/samber/mo"
)

// Count is the size of the demo data set.
const Count = 30

// Persons returns persons 1..n named "fn<i>". Even ones get lastname "ln<i>".
func Persons(n int) []person.Person {
	out := make([]person.Person, 0, n)
	for i := 1; i <= n; i++ {
		lastname := mo.None[string]()
		if i%2 == 0 {
			lastname = mo.Some("ln" + strconv.Itoa(i))
		}
		out = append(out, person.Person{
			ID:        personid.ID(i),
			Firstname: "fn" + strconv.Itoa(i),
			Lastname:  lastname,
		})
	}
	return out
}
