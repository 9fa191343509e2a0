package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowLogTailLimitsToLastNLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swiccd.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, showLogTail(&out, path, 2))
	assert.Equal(t, "three\nfour\n", out.String())
}

func TestShowLogTailRejectsMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := showLogTail(&out, "/nonexistent/swiccd.log", 10)
	assert.Error(t, err)
}
