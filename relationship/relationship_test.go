package relationship

import (
	"testing"

	"lms/person"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	john  = person.Person{ID: 1, Firstname: "John", Sex: person.Male}
	jane  = person.Person{ID: 2, Firstname: "Jane", Sex: person.Female}
	diana = person.Person{ID: 3, Firstname: "Diana"}
)

func allVariants() Definition {
	return Definition{
		Name:         "foo",
		LeftDefault:  "bar",
		RightDefault: "donut",
		Aliases: []Alias{
			{Name: "no_sex_forward"},
			{Name: "no_sex_reverse", Reverse: true},
			{Name: "left_male_forward", LeftSex: person.Male},
			{Name: "left_female_forward", LeftSex: person.Female},
			{Name: "left_male_reverse", LeftSex: person.Male, Reverse: true},
			{Name: "left_female_reverse", LeftSex: person.Female, Reverse: true},
			{Name: "right_male_forward", RightSex: person.Male},
			{Name: "right_female_reverse", RightSex: person.Female, Reverse: true},
		},
	}
}

func TestReprFallsBackToDefaultsThenName(t *testing.T) {
	named := Definition{Name: "foo"}
	defaults := Definition{Name: "foo", LeftDefault: "bar", RightDefault: "donut"}

	assert.Equal(t, "foo", named.LeftRepr(diana))
	assert.Equal(t, "foo", named.RightRepr(diana))
	assert.Equal(t, "bar", defaults.LeftRepr(diana))
	assert.Equal(t, "donut", defaults.RightRepr(diana))
}

func TestReprPicksAliasBySexAndDirection(t *testing.T) {
	d := allVariants()

	assert.Equal(t, "no_sex_forward", d.LeftRepr(diana))
	assert.Equal(t, "no_sex_reverse", d.RightRepr(diana))
	assert.Equal(t, "left_male_forward", d.LeftRepr(john))
	assert.Equal(t, "left_male_reverse", d.RightRepr(john))
	assert.Equal(t, "left_female_forward", d.LeftRepr(jane))
	assert.Equal(t, "left_female_reverse", d.RightRepr(jane))
}

func TestRelationshipReprFor(t *testing.T) {
	r := Relationship{Left: john, Right: jane, Definition: Definition{Name: "FooDef", LeftDefault: "LeftFoo", RightDefault: "RightFoo"}}

	left, leftErr := r.ReprFor(john)
	right, rightErr := r.ReprFor(jane)
	_, otherErr := r.ReprFor(diana)

	assert.NoError(t, leftErr)
	assert.NoError(t, rightErr)
	assert.Equal(t, "LeftFoo", left)
	assert.Equal(t, "RightFoo", right)
	assert.ErrorIs(t, otherErr, ErrNotInRelationship)
	assert.ErrorContains(t, otherErr, "Diana is neither the left nor right person of this FooDef relationship")
	assert.Equal(t, jane, r.Other(john))
	assert.Equal(t, john, r.Other(jane))
}

func TestParseStripsPatterns(t *testing.T) {
	ds := Definitions{{Name: "foo", Aliases: []Alias{{Name: "aaa"}, {Name: "bbb"}, {Name: "ccc"}}}}

	for _, alias := range []string{"aaa", "bbb", "ccc"} {
		for _, text := range []string{"donut " + alias + " acme", "donut" + alias + "acme", " donut " + alias + " acme"} {
			req, ok := ds.Parse(text)

			require.True(t, ok, text)
			assert.Equal(t, "donut", req.Written, text)
			assert.Equal(t, "acme", req.Other, text)
			assert.Equal(t, "foo", req.Definition.Name, text)
			assert.Equal(t, alias, req.Alias.Name, text)
		}
	}
}

func TestParseSelectsDefinitionFromAlias(t *testing.T) {
	ds := Definitions{
		{Name: "bar", Aliases: []Alias{{Name: "11"}, {Name: "22"}, {Name: "33"}}},
		{Name: "foo", Aliases: []Alias{{Name: "aaa"}, {Name: "bbb"}, {Name: "ccc"}}},
		{Name: "acme", Aliases: []Alias{{Name: "a2"}, {Name: "b3"}, {Name: "c4"}}},
	}

	for alias, want := range map[string]string{"aaa": "foo", "c4": "acme", "33": "bar"} {
		req, ok := ds.Parse("Johan " + alias + " Peter")

		require.True(t, ok, alias)
		assert.Equal(t, alias, req.Alias.Name)
		assert.Equal(t, want, req.Definition.Name)
	}
}

func TestParseNeedsBothPersons(t *testing.T) {
	ds := Definitions{{Name: "foo", Aliases: []Alias{{Name: "aaa"}}}}

	for _, text := range []string{"aaa acme", "aaa", " aaa ", "fooaaa", "foo aaa", "nothing here"} {
		_, ok := ds.Parse(text)

		assert.False(t, ok, text)
	}
}

func TestReverseRequest(t *testing.T) {
	req, ok := Defaults().Parse("Bob son of Jim")

	require.True(t, ok)
	left, right := req.Patterns()
	leftSex, rightSex := req.Sexes()
	assert.Equal(t, "parent", req.Definition.Name)
	assert.Equal(t, "Jim", left)
	assert.Equal(t, "Bob", right)
	assert.Equal(t, person.Unset, leftSex)
	assert.Equal(t, person.Male, rightSex)
}

func TestDefaults(t *testing.T) {
	ds := Defaults()

	assert.NoError(t, ds.Validate())
	parent, err := ds.ByName("parent")
	require.NoError(t, err)
	assert.Equal(t, "father of", parent.LeftRepr(john))
	assert.Equal(t, "daughter of", parent.RightRepr(jane))
	assert.Equal(t, "child of", parent.RightRepr(diana))

	sibling, err := ds.ByName("sibling")
	require.NoError(t, err)
	assert.Equal(t, "brother of", sibling.RightRepr(john))
	assert.Equal(t, "sister of", sibling.LeftRepr(jane))

	_, err = ds.ByName("cousin")
	assert.ErrorIs(t, err, ErrUnknownDefinition)
}

func TestValidateRejectsSharedAliases(t *testing.T) {
	ds := Definitions{
		{Name: "a", Aliases: []Alias{{Name: "x"}}},
		{Name: "b", Aliases: []Alias{{Name: "x"}}},
	}

	assert.ErrorIs(t, ds.Validate(), ErrInvalidDefinition)
	assert.ErrorIs(t, Definitions{{Name: "a"}, {Name: "a"}}.Validate(), ErrInvalidDefinition)
	assert.ErrorIs(t, Definitions{{Name: " "}}.Validate(), ErrInvalidDefinition)
}

func TestLink(t *testing.T) {
	l := Link{ID: 1, Left: 4, Right: 7, Definition: "parent"}

	assert.True(t, l.Involves(4))
	assert.True(t, l.Involves(7))
	assert.False(t, l.Involves(5))
	assert.True(t, l.Between(7, 4))
	assert.False(t, l.Between(4, 5))
}
