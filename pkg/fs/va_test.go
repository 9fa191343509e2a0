package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVAResetSelectsMF(t *testing.T) {
	disk := buildScenarioDisk(t)
	var va ValidityArea
	require.NoError(t, va.Reset(disk))
	assert.True(t, va.hasDF)
	assert.EqualValues(t, 0x3F00, va.CurDF.ID)
	assert.False(t, va.HasEF())
}

func TestVASelectByIDFolder(t *testing.T) {
	disk := buildScenarioDisk(t)
	var va ValidityArea
	require.NoError(t, va.Reset(disk))

	require.NoError(t, va.SelectByID(disk, 0x3F00))
	assert.EqualValues(t, 0x3F00, va.CurDF.ID)
	assert.False(t, va.HasEF())
}

func TestVASelectByIDEF(t *testing.T) {
	disk := buildScenarioDisk(t)
	var va ValidityArea
	require.NoError(t, va.Reset(disk))

	require.NoError(t, va.SelectByID(disk, 0x2F00))
	require.True(t, va.HasEF())
	assert.EqualValues(t, 0x2F00, va.CurEF.ID)
	assert.EqualValues(t, 0x3F00, va.CurDF.ID) // parent of the EF
}

func TestVASelectByIDMiss(t *testing.T) {
	disk := buildScenarioDisk(t)
	var va ValidityArea
	require.NoError(t, va.Reset(disk))
	assert.Error(t, va.SelectByID(disk, 0xDEAD))
}

func TestVASelectBySID(t *testing.T) {
	disk := buildScenarioDisk(t)
	var va ValidityArea
	require.NoError(t, va.Reset(disk))

	require.NoError(t, va.SelectBySID(0x02))
	require.True(t, va.HasEF())
	assert.EqualValues(t, 0x2F00, va.CurEF.ID)
}

func TestVASelectByPathFromMF(t *testing.T) {
	disk := buildScenarioDisk(t)
	var va ValidityArea
	require.NoError(t, va.Reset(disk))

	require.NoError(t, va.SelectByPath(disk, Path{Type: PathTypeMF, IDs: []uint16{0x2F00}}))
	require.True(t, va.HasEF())
	assert.EqualValues(t, 0x2F00, va.CurEF.ID)
}

func TestVASelectRecordByIndex(t *testing.T) {
	ef := NodeSpec{Type: ItemTypeEFLinearFixed, ID: 0x6F01, RecordSize: 2, Data: []byte{1, 2, 3, 4}}
	mf := NodeSpec{Type: ItemTypeMF, ID: 0x3F00, Children: []NodeSpec{ef}}
	tree, err := BuildTree(mf)
	require.NoError(t, err)
	disk := NewDisk(tree)
	require.NoError(t, disk.RebuildLUTID())

	var va ValidityArea
	require.NoError(t, va.Reset(disk))
	require.NoError(t, va.SelectByID(disk, 0x6F01))

	require.NoError(t, va.SelectRecordByIndex(1))
	assert.True(t, va.HasRecord())
	assert.EqualValues(t, 1, va.CurRcrdIdx)

	assert.Error(t, va.SelectRecordByIndex(2))
}

func TestVASelectADF(t *testing.T) {
	adf := NodeSpec{Type: ItemTypeADF}
	copy(adf.AID.RID[:], []byte{0xA0, 0x00, 0x00, 0x00, 0x01})
	copy(adf.AID.PIX[:], []byte{0x11, 0x22, 0x33, 0, 0, 0, 0, 0, 0, 0, 0})

	mf := NodeSpec{Type: ItemTypeMF, ID: 0x3F00}
	mfTree, err := BuildTree(mf)
	require.NoError(t, err)
	adfTree, err := BuildTree(adf)
	require.NoError(t, err)
	mfTree.Next = adfTree

	disk := NewDisk(mfTree)
	require.NoError(t, disk.RebuildLUTID())

	var va ValidityArea
	require.NoError(t, va.Reset(disk))

	aid := append(append([]byte{}, adf.AID.RID[:]...), []byte{0x11, 0x22, 0x33}...)
	require.NoError(t, va.SelectADF(disk, aid, 3))
	assert.True(t, va.HasADF())
}
