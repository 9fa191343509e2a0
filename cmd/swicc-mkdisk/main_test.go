package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiccgo/swicc/pkg/fs"
)

const sampleDiskJSON = `
{
	"trees": [
		{
			"type": "mf",
			"id": "3F00",
			"name": "MF",
			"children": [
				{"type": "ef_transparent", "id": "2F00", "sid": "02", "data": "0011"}
			]
		}
	]
}`

func TestRunBuildsLoadableBinaryDisk(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "disk.json")
	binPath := filepath.Join(dir, "disk.img")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleDiskJSON), 0644))

	require.NoError(t, run(jsonPath, binPath))

	f, err := os.Open(binPath)
	require.NoError(t, err)
	defer f.Close()

	disk, err := fs.Load(f)
	require.NoError(t, err)

	_, ef, err := disk.LookupByID(0x2F00)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x11}, ef.Data)
}

func TestRunRejectsMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "nope.json"), filepath.Join(dir, "out.img"))
	assert.Error(t, err)
}

func TestRunRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "disk.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("not json"), 0644))

	err := run(jsonPath, filepath.Join(dir, "out.img"))
	assert.Error(t, err)
}
