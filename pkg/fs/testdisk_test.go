package fs

// buildScenarioDisk constructs the disk used across the end-to-end test
// scenarios: MF(3F00) containing one transparent EF(2F00, SID=0x02) holding
// the 10 bytes 00..09.
func buildScenarioDisk(t testingT) *Disk {
	t.Helper()

	ef := NodeSpec{
		Type: ItemTypeEFTransparent,
		LCS:  LCSOperActivated,
		ID:   0x2F00,
		SID:  0x02,
		Data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
	}
	mf := NodeSpec{
		Type:     ItemTypeMF,
		LCS:      LCSOperActivated,
		ID:       0x3F00,
		Children: []NodeSpec{ef},
	}
	copy(mf.Name[:], "MF")

	tree, err := BuildTree(mf)
	mustNoError(t, err)

	disk := NewDisk(tree)
	mustNoError(t, disk.RebuildLUTID())
	mustNoError(t, disk.RebuildLUTSIDAll())
	return disk
}

// testingT is the minimal subset of *testing.T this helper needs, so it
// can be shared by any _test.go file in the package without an import
// cycle concern.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

func mustNoError(t testingT, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
