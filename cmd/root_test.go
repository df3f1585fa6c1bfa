package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lms/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, file string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	links := filepath.Join(filepath.Dir(file), "relationships.db")
	root.SetArgs(append([]string{"--db-file", file, "--links-file", links, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func dbFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "persons.db")
}

func TestListEmpty(t *testing.T) {
	out, err := run(t, dbFile(t), "list")

	assert.NoError(t, err)
	assert.Equal(t, "No Person registered yet.\n", out)
}

func TestAddThenList(t *testing.T) {
	// arrange
	file := dbFile(t)

	// act
	addOut, addErr := run(t, file, "add", "Jim", "Morisson", "--sex", "male")
	_, bobErr := run(t, file, "add", "Bob")
	listOut, listErr := run(t, file, "list")

	// assert
	assert.NoError(t, addErr)
	assert.NoError(t, bobErr)
	assert.Equal(t, "Create Person Jim Morisson.\n", addOut)
	assert.NoError(t, listErr)

	lines := strings.Split(strings.TrimSpace(listOut), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "(1) MALE Jim Morisson ("), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "(2) UNSET Bob ("), lines[1])

	metas, err := filestore.Load(file)
	require.NoError(t, err)
	assert.Len(t, metas, 2)
}

func TestAddArgs(t *testing.T) {
	file := dbFile(t)

	_, noneErr := run(t, file, "add")
	_, manyErr := run(t, file, "add", "a", "b", "c")
	_, sexErr := run(t, file, "add", "a", "--sex", "other")

	assert.ErrorContains(t, noneErr, "requires at least 1 argument")
	assert.ErrorContains(t, manyErr, "too many arguments (3)")
	assert.Error(t, sexErr)
	assert.NoFileExists(t, file)
}

func TestSearch(t *testing.T) {
	// arrange
	file := dbFile(t)
	_, err := run(t, file, "sample")
	require.NoError(t, err)

	// act
	out, err := run(t, file, "search", "fn1")

	// assert
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Searching for fn1...", lines[0])
	assert.Equal(t, "(1) fn1", lines[1])
	assert.Equal(t, "(10) fn10 ln10", lines[2])
	assert.Equal(t, "(19) fn19", lines[11])
}

func TestSearchEverythingInSample(t *testing.T) {
	out, err := run(t, dbFile(t), "search", "--sample")

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Displaying everything", lines[0])
	assert.Len(t, lines, 31)
}

func TestSearchFull(t *testing.T) {
	file := dbFile(t)
	_, err := run(t, file, "add", "Jim", "Morisson")
	require.NoError(t, err)

	byFirstname, firstErr := run(t, file, "search", "Jim M")
	byFull, fullErr := run(t, file, "search", "--full", "Jim M")

	assert.NoError(t, firstErr)
	assert.NoError(t, fullErr)
	assert.Equal(t, "Searching for Jim M...\n", byFirstname)
	assert.Equal(t, "Searching for Jim M...\n(1) Jim Morisson\n", byFull)
}

func TestUpdate(t *testing.T) {
	// arrange
	file := dbFile(t)
	_, err := run(t, file, "add", "Jim", "--sex", "male")
	require.NoError(t, err)

	// act
	_, updateErr := run(t, file, "update", "1", "James", "Morisson")
	_, missingErr := run(t, file, "update", "7", "Nobody")

	// assert
	assert.NoError(t, updateErr)
	assert.Error(t, missingErr)

	metas, err := filestore.Load(file)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "James Morisson", metas[0].DisplayName())
	assert.Equal(t, "MALE", metas[0].Sex.String())
}

func TestDeleteKeepsIdsUnique(t *testing.T) {
	// arrange
	file := dbFile(t)
	for _, name := range []string{"a", "b"} {
		_, err := run(t, file, "add", name)
		require.NoError(t, err)
	}

	// act
	_, delErr := run(t, file, "delete", "1")
	_, missingErr := run(t, file, "delete", "1")
	_, addErr := run(t, file, "add", "c")
	out, listErr := run(t, file, "search")

	// assert
	assert.NoError(t, delErr)
	assert.Error(t, missingErr)
	assert.NoError(t, addErr)
	assert.NoError(t, listErr)
	assert.Equal(t, "Displaying everything\n(2) b\n(3) c\n", out)
}

func TestDeleteLastRemovesFile(t *testing.T) {
	file := dbFile(t)
	_, err := run(t, file, "add", "a")
	require.NoError(t, err)

	_, err = run(t, file, "delete", "1")

	assert.NoError(t, err)
	assert.NoFileExists(t, file)
}

func TestSampleNeedsEmptyDatabase(t *testing.T) {
	file := dbFile(t)
	_, err := run(t, file, "add", "a")
	require.NoError(t, err)

	_, err = run(t, file, "sample", "--count", "3")

	assert.Error(t, err)
}

func TestStorageAndCodecFromEnv(t *testing.T) {
	// arrange
	file := dbFile(t)
	t.Setenv("LMS_STORAGE", "skipmap")
	t.Setenv("LMS_CODEC", "json")

	// act
	_, sampleErr := run(t, file, "sample", "--count", "4")
	out, searchErr := run(t, file, "search", "fn")
	cfgOut, cfgErr := run(t, file, "config")

	// assert
	assert.NoError(t, sampleErr)
	assert.NoError(t, searchErr)
	assert.Equal(t, "Searching for fn...\n(1) fn1\n(2) fn2 ln2\n(3) fn3\n(4) fn4 ln4\n", out)
	assert.NoError(t, cfgErr)
	assert.Contains(t, cfgOut, "skipmap")
	assert.Contains(t, cfgOut, "json")
}

func TestInvalidConfig(t *testing.T) {
	file := dbFile(t)

	_, storageErr := run(t, file, "list", "--storage", "btree")
	_, codecErr := run(t, file, "list", "--codec", "xml")
	_, levelErr := run(t, file, "list", "--log-level", "loud")

	assert.ErrorContains(t, storageErr, "invalid storage")
	assert.ErrorContains(t, codecErr, "invalid codec")
	assert.ErrorContains(t, levelErr, "invalid log level")
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	file := dbFile(t)
	require.NoError(t, os.WriteFile(file, []byte(`[{"id": 1}]`), 0o644))

	_, err := run(t, file, "list")

	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, dbFile(t), "version")

	assert.NoError(t, err)
	assert.Equal(t, "lms v"+Version+"\n", out)
}

func TestCreatedMicrosecondsSurviveSave(t *testing.T) {
	// arrange
	file := dbFile(t)
	require.NoError(t, os.WriteFile(file, []byte(`[{"id": 1, "firstname": "Jim", "created": "2024-04-05 12:41:09.123456"}]`), 0o644))

	// act
	_, addErr := run(t, file, "add", "Bob")
	metas, loadErr := filestore.Load(file)

	// assert
	require.NoError(t, addErr)
	require.NoError(t, loadErr)
	require.Len(t, metas, 2)
	assert.Equal(t, "2024-04-05 12:41:09.123456", filestore.FormatCreated(metas[0].Created))
}

func TestDeletedHighestIdIsReissuedAfterRestart(t *testing.T) {
	// arrange
	file := dbFile(t)
	for _, name := range []string{"a", "b"} {
		_, err := run(t, file, "add", name)
		require.NoError(t, err)
	}

	// act
	_, delErr := run(t, file, "delete", "2")
	_, addErr := run(t, file, "add", "c")
	out, err := run(t, file, "search")

	// assert
	assert.NoError(t, delErr)
	assert.NoError(t, addErr)
	assert.NoError(t, err)
	assert.Equal(t, "Displaying everything\n(1) a\n(2) c\n", out)
}

func TestAddRejectsInvalidUTF8(t *testing.T) {
	file := dbFile(t)

	_, err := run(t, file, "add", "fn\xff")

	assert.ErrorContains(t, err, "not valid UTF-8")
	assert.NoFileExists(t, file)
}

func TestLinkListUnlink(t *testing.T) {
	// arrange
	file := dbFile(t)
	for _, args := range [][]string{{"add", "Jim", "Doe"}, {"add", "Bob", "Doe"}, {"add", "Ann"}} {
		_, err := run(t, file, args...)
		require.NoError(t, err)
	}

	// act
	linkOut, linkErr := run(t, file, "link", "Jim", "father", "of", "Bob")
	_, siblingErr := run(t, file, "link", "Ann sister of 2")
	listOut, listErr := run(t, file, "list")
	unlinkOut, unlinkErr := run(t, file, "unlink", "2", "1")
	_, againErr := run(t, file, "unlink", "2", "1")
	searchOut, searchErr := run(t, file, "search", "--full", "Doe")

	// assert
	require.NoError(t, linkErr)
	assert.Equal(t, "Sex of Jim Doe set to MALE from alias father of\nLink (1) Jim Doe and (2) Bob Doe as \"parent\".\n", linkOut)
	require.NoError(t, siblingErr)
	require.NoError(t, listErr)

	lines := strings.Split(strings.TrimSpace(listOut), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "(1) MALE Jim Doe ("), lines[0])
	assert.Equal(t, "    -> father of (2) Bob Doe", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "(2) UNSET Bob Doe ("), lines[2])
	assert.Equal(t, "    -> child of (1) Jim Doe", lines[3])
	assert.Equal(t, "    -> sibling of (3) Ann", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "(3) FEMALE Ann ("), lines[5])
	assert.Equal(t, "    -> sister of (2) Bob Doe", lines[6])

	assert.NoError(t, unlinkErr)
	assert.Equal(t, "Delete relationship \"parent\" between (2) Bob Doe and (1) Jim Doe.\n", unlinkOut)
	assert.Error(t, againErr)
	assert.NoError(t, searchErr)
	assert.Equal(t, "Searching for Doe...\n(1) Jim Doe\n(2) Bob Doe\n", searchOut)

	links, err := filestore.LoadLinks(filepath.Join(filepath.Dir(file), "relationships.db"))
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestLinkNeedsAlias(t *testing.T) {
	file := dbFile(t)
	_, err := run(t, file, "add", "Jim")
	require.NoError(t, err)

	_, err = run(t, file, "link", "Jim", "friend", "of", "Bob")

	assert.ErrorContains(t, err, "no relationship found")
}

func TestDeletePersonDropsRelationships(t *testing.T) {
	// arrange
	file := dbFile(t)
	for _, args := range [][]string{{"add", "Jim"}, {"add", "Bob"}, {"link", "Jim", "spouse", "of", "Bob"}} {
		_, err := run(t, file, args...)
		require.NoError(t, err)
	}

	// act
	_, err := run(t, file, "delete", "1")

	// assert
	assert.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(file), "relationships.db"))
}

func TestDump(t *testing.T) {
	file := dbFile(t)
	_, err := run(t, file, "add", "Jim")
	require.NoError(t, err)

	out, err := run(t, file, "dump")

	assert.NoError(t, err)
	assert.Contains(t, out, "idx_persons_firstname_3:Jim_0000000001\t")
	assert.Contains(t, out, "rec_persons_pk_0000000001\t")
}
