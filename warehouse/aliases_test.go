package warehouse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	a := NewAliasSet()

	assert.Equal(t, "Courage", a.Normalize("North Carolina Courage"))
	assert.Equal(t, "Courage", a.Normalize("nc courage"))
	assert.Equal(t, "Gotham FC", a.Normalize("gotham"))
	assert.Equal(t, "Current", a.Normalize("  Kansas City Current "))

	// unknown names pass through so canonical values still match
	assert.Equal(t, "Bay FC", a.Normalize("Bay FC"))
	assert.Equal(t, "Nonexistent FC", a.Normalize("Nonexistent FC"))
	assert.Equal(t, "", a.Normalize(""))
}

func TestLoadAliasFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kc current: Current\nthe spirit: Spirit\n"), 0o644))

	a := NewAliasSet()
	require.NoError(t, a.LoadAliasFile(path))

	assert.Equal(t, "Current", a.Normalize("KC Current"))
	assert.Equal(t, "Spirit", a.Normalize("the spirit"))
	// defaults survive the merge
	assert.Equal(t, "Thorns", a.Normalize("portland thorns"))
}

func TestLoadAliasFileMissingIsFine(t *testing.T) {
	a := NewAliasSet()
	assert.NoError(t, a.LoadAliasFile(""))
	assert.NoError(t, a.LoadAliasFile("/nonexistent/aliases.yaml"))
}

func TestTableAccessors(t *testing.T) {
	tbl := &Table{
		Columns: []string{"team", "goals", "xg"},
		Rows: [][]interface{}{
			{"Current", int64(56), 52.3},
			{"Spirit", int64(49), nil},
		},
	}

	assert.False(t, tbl.Empty())
	assert.Equal(t, 2, tbl.Len())

	s, ok := tbl.String(0, "team")
	assert.True(t, ok)
	assert.Equal(t, "Current", s)

	g, ok := tbl.Int(0, "goals")
	assert.True(t, ok)
	assert.Equal(t, int64(56), g)

	x, ok := tbl.Float(0, "xg")
	assert.True(t, ok)
	assert.InDelta(t, 52.3, x, 0.001)

	_, ok = tbl.Float(1, "xg")
	assert.False(t, ok, "NULL should not coerce")

	assert.Nil(t, tbl.Get(5, "team"))
	assert.Nil(t, tbl.Get(0, "missing"))

	var empty *Table
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Len())
}
