package strtab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReferenceTable(t *testing.T) {
	table, err := Load("testdata/strings.json")
	require.NoError(t, err)

	assert.Equal(t, "{name}", table.Config.FlowTitle)
	assert.Len(t, table.Config.Step, 3)
	assert.Equal(t, "Missing UPnP settings on device.",
		table.Config.Error["upnp_not_configured"])
	assert.True(t, IsReference(table.Config.Abort["already_configured"]))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := Parse([]byte(`{"config": {}, "cofnig": {}}`))
	assert.Error(t, err)
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte{'{', 0xff, 0xfe, '}'})
	assert.ErrorContains(t, err, "UTF-8")
}

func TestParseRejectsNonStringLeaf(t *testing.T) {
	_, err := Parse([]byte(`{"config": {"abort": {"already_configured": 7}}}`))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	table, err := Load("testdata/strings.json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "strings.json")
	require.NoError(t, table.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(table, reloaded); diff != "" {
		t.Errorf("round trip changed the table (-saved +reloaded):\n%s", diff)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	table, err := Load("testdata/strings.json")
	require.NoError(t, err)

	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")
	require.NoError(t, table.Save(first))

	reloaded, err := Load(first)
	require.NoError(t, err)
	require.NoError(t, reloaded.Save(second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "serialized form not stable across a reload cycle")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	table := &Table{Config: ConfigSection{FlowTitle: "{name}"}}

	dir := t.TempDir()
	require.NoError(t, table.Save(filepath.Join(dir, "strings.json")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "strings.json", entries[0].Name())
}

func TestMarshalOmitsEmptyOptions(t *testing.T) {
	table := &Table{Config: ConfigSection{FlowTitle: "{name}"}}

	data, err := table.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"options"`)
}
