package diskjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiccgo/swicc/pkg/fs"
)

func TestDecodeBuildsMFWithTransparentEF(t *testing.T) {
	doc := `
	{
		"trees": [
			{
				"type": "mf",
				"id": "3F00",
				"name": "MF",
				"children": [
					{
						"type": "ef_transparent",
						"id": "2F00",
						"sid": "02",
						"data": "0001020304"
					}
				]
			}
		]
	}`

	disk, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	tree, f, err := disk.LookupByID(0x3F00)
	require.NoError(t, err)
	assert.Equal(t, fs.ItemTypeMF, f.Item.Type)

	_, ef, err := disk.LookupByID(0x2F00)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x02, 0x03, 0x04}, ef.Data)

	sidFile, err := tree.LookupBySID(0x02)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x2F00), sidFile.ID)
}

func TestDecodeBuildsForestWithADF(t *testing.T) {
	doc := `
	{
		"trees": [
			{"type": "mf", "id": "3F00", "name": "MF"},
			{"type": "adf", "aid": "A0000000030000000000000000000000", "children": [
				{"type": "ef_transparent", "id": "6F07", "data": "AA"}
			]}
		]
	}`

	disk, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	tree1, err := disk.TreeAt(1)
	require.NoError(t, err)
	root, err := tree1.RootFile()
	require.NoError(t, err)
	assert.Equal(t, fs.ItemTypeADF, root.Item.Type)

	_, ef, err := disk.LookupByID(0x6F07)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, ef.Data)
}

func TestDecodeLinearFixedRecordsArePacked(t *testing.T) {
	doc := `
	{
		"trees": [
			{"type": "mf", "id": "3F00", "name": "MF", "children": [
				{"type": "ef_linear_fixed", "id": "6F01", "record_size": 4,
				 "records": ["AABBCCDD", "11223344"]}
			]}
		]
	}`

	disk, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	_, ef, err := disk.LookupByID(0x6F01)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), ef.RecordSize)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x11, 0x22, 0x33, 0x44}, ef.Data)

	n, err := fs.RecordCount(ef)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestDecodeRejectsNonMFFirstTree(t *testing.T) {
	doc := `{"trees": [{"type": "adf", "aid": "A0000000030000000000000000000000"}]}`
	_, err := Decode(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	doc := `{"trees": [{"type": "bogus"}]}`
	_, err := Decode(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestDecodeRejectsNoTrees(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"trees": []}`))
	assert.Error(t, err)
}

func TestDecodeASCIIItemUsesTextVerbatim(t *testing.T) {
	doc := `
	{
		"trees": [
			{"type": "mf", "id": "3F00", "name": "MF", "children": [
				{"type": "ascii", "id": "5F00", "text": "hello"}
			]}
		]
	}`

	disk, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	_, f, err := disk.LookupByID(0x5F00)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(f.Data))
}
