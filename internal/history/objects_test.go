package history

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	idA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	idB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	idC = "cccccccccccccccccccccccccccccccccccccccc"
	idD = "dddddddddddddddddddddddddddddddddddddddd"
	idE = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

	idCommit   = "1111111111111111111111111111111111111111"
	idRootTree = "2222222222222222222222222222222222222222"
)

func TestParseAssociations(t *testing.T) {
	// Commits are listed bare; the root tree carries an empty path.
	input := strings.Join([]string{
		idCommit,
		idRootTree + " ",
		idA + " src/big.bin",
		idB + " README",
		"",
	}, "\n")

	assoc, err := parseAssociations(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		idRootTree: "",
		idA:        "src/big.bin",
		idB:        "README",
	}, assoc)
}

func TestParseAssociationsLastWriteWins(t *testing.T) {
	input := idA + " old/path.txt\n" + idA + " new/path.txt\n"

	assoc, err := parseAssociations(strings.NewReader(input))
	require.NoError(t, err)

	// The same content recorded under several paths keeps only the last
	// path observed.
	assert.Equal(t, map[string]string{idA: "new/path.txt"}, assoc)
}

func TestParseAssociationsMalformed(t *testing.T) {
	_, err := parseAssociations(strings.NewReader("notanobjectid\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed rev-list entry")
}

// TestEnumerateObjectsMalformedOutputAborts makes rev-list emit a malformed
// first line followed by far more output than a pipe buffer holds. Parsing
// stops at the first line, so the subprocess can only exit if the remaining
// output is drained; the run must still fail fast with the parse error.
func TestEnumerateObjectsMalformedOutputAborts(t *testing.T) {
	stub := writeStubGit(t, `#!/bin/sh
echo "notanobjectid"
i=0
while [ $i -lt 20000 ]; do
	echo "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa path/to/file-$i.bin"
	i=$((i+1))
done
`)

	r := &repo{git: stub}

	done := make(chan error, 1)

	go func() {
		_, err := r.enumerateObjects(context.Background(), nil)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed rev-list entry")
	case <-time.After(30 * time.Second):
		t.Fatal("enumerateObjects did not return after a malformed line")
	}
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, isObjectID(strings.Repeat("a", 40)))
	assert.True(t, isObjectID(strings.Repeat("0", 64)))

	assert.False(t, isObjectID(""))
	assert.False(t, isObjectID(strings.Repeat("a", 39)))
	assert.False(t, isObjectID(strings.Repeat("A", 40)))
	assert.False(t, isObjectID(strings.Repeat("g", 40)))
}
