package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSchemaPrintsToStdout(t *testing.T) {
	cmd := GetRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "schema"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "swiccd Configuration")
	assert.Contains(t, out.String(), "json-schema.org/draft/2020-12/schema")
}

func TestConfigSchemaWritesToFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "config.schema.json")

	cmd := GetRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "schema", "--output", outPath})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "written to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "swiccd Configuration")
}
