package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlink/flowstrings/internal/paths"
)

const testTable = "testdata/strings.json"

// runCLI executes the root command with args and returns its combined
// output. Global flag state is reset afterwards so tests stay independent.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	flagConfigDir = ""
	flagDataDir = ""
	flagRegistry = ""
	flagJSON = false
	flagDebug = false
	indexReport = false

	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "flowstrings 0.3.0")
}

func TestValidateCommandClean(t *testing.T) {
	out, err := runCLI(t, "validate", testTable)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestValidateCommandReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strings.json")
	broken := `{"config": {"abort": {"gone": "[%key:common::config_flow::abort::no_such_reason%]"}}}`
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	out, err := runCLI(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "config.abort.gone")
}

func TestLookupCommand(t *testing.T) {
	out, err := runCLI(t, "lookup", testTable, "config.error.upnp_not_configured")
	require.NoError(t, err)
	assert.Contains(t, out, "Missing UPnP settings on device.")
}

func TestLookupCommandResolvesReference(t *testing.T) {
	out, err := runCLI(t, "lookup", testTable, "config.abort.reauth_successful")
	require.NoError(t, err)
	assert.Contains(t, out, "Re-authentication was successful")
	assert.NotContains(t, out, "[%key:")
}

func TestLookupCommandMissingKey(t *testing.T) {
	_, err := runCLI(t, "lookup", testTable, "config.step.nope.title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing key")
}

func TestRenderCommand(t *testing.T) {
	out, err := runCLI(t, "render", testTable, "config.flow_title", "name=Living Room Box")
	require.NoError(t, err)
	assert.Equal(t, "Living Room Box\n", out)
}

func TestRenderCommandMissingSubstitution(t *testing.T) {
	_, err := runCLI(t, "render", testTable, "config.flow_title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing substitution")
}

func TestRenderCommandBadPair(t *testing.T) {
	_, err := runCLI(t, "render", testTable, "config.flow_title", "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")
}

func TestKeysCommandJSON(t *testing.T) {
	out, err := runCLI(t, "keys", "--json", testTable)
	require.NoError(t, err)
	assert.Contains(t, out, `"config.flow_title"`)
	assert.Contains(t, out, `"options.step.init.data.prefer_aac"`)
}

func TestIndexAndReport(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "db")

	tree := t.TempDir()
	okDir := filepath.Join(tree, "silverstone_radio")
	require.NoError(t, os.MkdirAll(okDir, 0o755))
	src, err := os.ReadFile(testTable)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(okDir, "strings.json"), src, 0o644))

	out, err := runCLI(t, "index", "--data-dir", dataDir, tree)
	require.NoError(t, err)
	assert.Contains(t, out, "indexed silverstone_radio")

	out, err = runCLI(t, "index", "--data-dir", dataDir, "--report")
	require.NoError(t, err)
	assert.Contains(t, out, "no dangling references")
}

func TestIndexReportFindsDangling(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "db")

	tree := t.TempDir()
	brokenDir := filepath.Join(tree, "broken_device")
	require.NoError(t, os.MkdirAll(brokenDir, 0o755))
	broken := `{"config": {"abort": {"gone": "[%key:common::config_flow::abort::no_such_reason%]"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(brokenDir, "strings.json"), []byte(broken), 0o644))

	out, err := runCLI(t, "index", "--data-dir", dataDir, "--report", tree)
	require.Error(t, err)
	assert.Contains(t, out, "broken_device config.abort.gone")
}

func TestIndexWithoutArgs(t *testing.T) {
	_, err := runCLI(t, "index")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to do")
}
