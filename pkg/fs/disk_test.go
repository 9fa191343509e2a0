package fs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadByteIdentical(t *testing.T) {
	disk := buildScenarioDisk(t)

	var buf bytes.Buffer
	require.NoError(t, disk.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, disk.Root.Buf, loaded.Root.Buf)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := Load(bytes.NewReader(make([]byte, 20)))
	assert.Error(t, err)
}

func TestLUTIDLookupAfterRebuild(t *testing.T) {
	disk := buildScenarioDisk(t)

	_, mf, err := disk.LookupByID(0x3F00)
	require.NoError(t, err)
	assert.Equal(t, ItemTypeMF, mf.Item.Type)

	_, ef, err := disk.LookupByID(0x2F00)
	require.NoError(t, err)
	assert.Equal(t, ItemTypeEFTransparent, ef.Item.Type)

	assert.True(t, disk.lutid.keysAscending())
}

func TestLUTIDLookupMiss(t *testing.T) {
	disk := buildScenarioDisk(t)
	_, _, err := disk.LookupByID(0xDEAD)
	assert.Error(t, err)
}

func TestLUTSIDLookupAfterRebuild(t *testing.T) {
	disk := buildScenarioDisk(t)
	f, err := disk.Root.LookupBySID(0x02)
	require.NoError(t, err)
	assert.EqualValues(t, 0x2F00, f.ID)
	assert.True(t, disk.Root.lutsid.keysAscending())
}

func TestRecordAccessLinearFixed(t *testing.T) {
	rec1 := []byte{0xAA, 0xBB}
	rec2 := []byte{0xCC, 0xDD}
	ef := NodeSpec{
		Type:       ItemTypeEFLinearFixed,
		ID:         0x6F01,
		RecordSize: 2,
		Data:       append(append([]byte{}, rec1...), rec2...),
	}
	mf := NodeSpec{Type: ItemTypeMF, ID: 0x3F00, Children: []NodeSpec{ef}}

	tree, err := BuildTree(mf)
	require.NoError(t, err)
	disk := NewDisk(tree)
	require.NoError(t, disk.RebuildLUTID())

	_, file, err := disk.LookupByID(0x6F01)
	require.NoError(t, err)

	count, err := RecordCount(file)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	r1, err := Record(file, 0)
	require.NoError(t, err)
	assert.Equal(t, rec1, r1)

	r2, err := Record(file, 1)
	require.NoError(t, err)
	assert.Equal(t, rec2, r2)

	_, err = Record(file, 2)
	assert.Error(t, err)
}
