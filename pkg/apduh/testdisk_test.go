package apduh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiccgo/swicc/pkg/fs"
)

// buildScenarioDisk constructs the disk used across the end-to-end test
// scenarios: MF(3F00) containing one transparent EF(2F00, SID=0x02) holding
// the 10 bytes 00..09, plus a record-structured EF for READ RECORD tests.
func buildScenarioDisk(t *testing.T) *fs.Disk {
	t.Helper()

	transparent := fs.NodeSpec{
		Type: fs.ItemTypeEFTransparent,
		LCS:  fs.LCSOperActivated,
		ID:   0x2F00,
		SID:  0x02,
		Data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
	}
	linear := fs.NodeSpec{
		Type:       fs.ItemTypeEFLinearFixed,
		LCS:        fs.LCSOperActivated,
		ID:         0x6F01,
		SID:        0x01,
		RecordSize: 4,
		Data: []byte{
			0xAA, 0xAA, 0xAA, 0xAA,
			0xBB, 0xBB, 0xBB, 0xBB,
		},
	}
	mf := fs.NodeSpec{
		Type:     fs.ItemTypeMF,
		LCS:      fs.LCSOperActivated,
		ID:       0x3F00,
		Children: []fs.NodeSpec{transparent, linear},
	}
	copy(mf.Name[:], "MF")

	tree, err := fs.BuildTree(mf)
	require.NoError(t, err)

	disk := fs.NewDisk(tree)
	require.NoError(t, disk.RebuildLUTID())
	require.NoError(t, disk.RebuildLUTSIDAll())
	return disk
}

func newTestState(t *testing.T) *State {
	t.Helper()
	state := &State{Disk: buildScenarioDisk(t)}
	require.NoError(t, state.Reset())
	return state
}
