package gaf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobayes/domain/annotation"
)

const sampleGAF = "!gaf-version: 2.2\n" +
	"!generated-by: test\n" +
	"UniProtKB\tP1\tABC1\t\tGO:0005743\tPMID:1\tIDA\t\tC\n" +
	"UniProtKB\tP1\tABC1\t\tGO:0016020\tGO_REF:2\tIEA\t\tC\n" +
	"UniProtKB\tP2\tXYZ2\t\tGO:0005739\tPMID:3\tND\t\tC\n" +
	"\n"

func TestRead_DefaultDiscard(t *testing.T) {
	rows, err := Read(strings.NewReader(sampleGAF), DefaultDiscard())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ABC1", rows[0][2])
	assert.Equal(t, "GO:0005743", rows[0][4])
	assert.Equal(t, "XYZ2", rows[1][2])

	idx, err := annotation.Build(rows, annotation.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
}

func TestRead_NoDiscard(t *testing.T) {
	rows, err := Read(strings.NewReader(sampleGAF), nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDefaultDiscard_FreshSlice(t *testing.T) {
	a := DefaultDiscard()
	a[0].Value = "changed"
	assert.Equal(t, []Discard{{Column: 6, Value: "IEA"}}, DefaultDiscard())
}

func TestParseDiscard(t *testing.T) {
	rules, err := ParseDiscard("6:IEA, 6:ND")
	require.NoError(t, err)
	assert.Equal(t, []Discard{{6, "IEA"}, {6, "ND"}}, rules)

	rules, err = ParseDiscard("")
	require.NoError(t, err)
	assert.Empty(t, rules)

	_, err = ParseDiscard("IEA")
	assert.Error(t, err)
	_, err = ParseDiscard("x:IEA")
	assert.Error(t, err)
}

func TestRead_ShortRowsAreKept(t *testing.T) {
	// Short rows are not silently dropped; building the index rejects them.
	rows, err := Read(strings.NewReader("UniProtKB\tP1\n"), DefaultDiscard())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = annotation.Build(rows, annotation.DefaultOptions())
	assert.Error(t, err)
}
