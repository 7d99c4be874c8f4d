package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alastai/grasch-lex/internal/config"
)

const tables = `
nodes:
  - name: Table
    abstract: true
    properties:
      - {name: name, type: STRING, mandatory: true}
  - name: BaseTable
    labels: [BaseTable]
    key: [BaseTable]
    properties:
      - {name: name, type: STRING, mandatory: true}
  - name: View
    labels: [View]
    key: [View]
    properties:
      - {name: name, type: STRING, mandatory: true}
      - {name: query, type: STRING, mandatory: true}
instances:
  - type: Table
    labels: [View]
    properties: {name: v1, query: "SELECT 1"}
  - type: Table
    properties: {name: t1}
`

func writeFile(t testing.TB, name, data string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLatticeCmd(t *testing.T) {
	path := writeFile(t, "tables.yaml", tables)
	cmd := NewLatticeCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--check", path})
	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "HANDLE"))
	assert.Contains(t, out, "ANY_CONTENT_TYPE")
	assert.Contains(t, out, "{:View,name::STRING,query::STRING}")
}

func TestLatticeCmdNoArgs(t *testing.T) {
	cmd := NewLatticeCmd()
	cmd.SilenceUsage = true
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	assert.Equal(t, errNoDefinition, cmd.Execute())
}

func TestValidateCmd(t *testing.T) {
	path := writeFile(t, "tables.yaml", tables)
	defer viper.Set(config.KeyMode, nil)

	viper.Set(config.KeyMode, "proper-subtype")
	cmd := NewValidateCmd()
	cmd.SilenceUsage = true
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	require.Error(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0\tOK\tView", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\tFAIL\tTable\t"))
	assert.Contains(t, lines[1], "cannot be instantiated directly")
}

func TestExportCmd(t *testing.T) {
	path := writeFile(t, "tables.yaml", tables)
	out := filepath.Join(t.TempDir(), "out.nq")
	defer viper.Set(config.KeyExportFormat, nil)

	viper.Set(config.KeyExportFormat, "nquads")
	cmd := NewExportCmd()
	cmd.SetArgs([]string{"-o", out, path})
	require.NoError(t, cmd.Execute())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<http://www.w3.org/2000/01/rdf-schema#subClassOf>")
	assert.Contains(t, string(data), "<urn:grasch:node/View>")
}

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "grasch "))
}

func TestWriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")
	defer viper.Set(config.KeyMetricsFile, nil)
	viper.Set(config.KeyMetricsFile, path)

	cmd := NewLatticeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{writeFile(t, "tables.yaml", tables)})
	require.NoError(t, cmd.Execute())
	require.NoError(t, WriteMetrics())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "grasch_lattice_registered_count")
}
