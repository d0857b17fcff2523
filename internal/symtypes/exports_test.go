package symtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportIndexRegisterAndLookup(t *testing.T) {
	ei := NewExportIndex()

	require.NoError(t, ei.Register("bar", 0, "a.symtypes", 3))

	idx, ok := ei.FileOf("bar")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, ei.Len())
}

func TestExportIndexRejectsDuplicate(t *testing.T) {
	ei := NewExportIndex()
	require.NoError(t, ei.Register("bar", 0, "a.symtypes", 3))

	err := ei.Register("bar", 1, "b.symtypes", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate export")
	assert.Contains(t, err.Error(), "a.symtypes:3")
}

func TestExportIndexNamesAndMissing(t *testing.T) {
	ei := NewExportIndex()
	_, ok := ei.FileOf("missing")
	assert.False(t, ok)

	require.NoError(t, ei.Register("bar", 0, "a.symtypes", 1))
	require.NoError(t, ei.Register("baz", 0, "a.symtypes", 2))
	assert.ElementsMatch(t, []string{"bar", "baz"}, ei.Names())
}
