package fs

import "github.com/swiccgo/swicc/pkg/swiccerr"

// RecordCount returns the number of fixed-size records stored in f, which
// must be a linear-fixed or cyclic EF.
func RecordCount(f File) (uint32, error) {
	if !recordStructured(f) {
		return 0, swiccerr.Newf(swiccerr.ParamBad, "file is not record-structured")
	}
	if f.RecordSize == 0 {
		return 0, nil
	}
	return uint32(len(f.Data)) / uint32(f.RecordSize), nil
}

// Record returns the bytes of record idx (0-based) in f.
//
// For both linear-fixed and cyclic files, record idx begins at
// file_offset + header_size + record_size*idx: this engine does not
// distinguish the two kinds' addressing, only READ RECORD's "next/previous"
// occurrence handling would differ, and that mode is unsupported (see
// pkg/apduh).
func Record(f File, idx uint8) ([]byte, error) {
	if !recordStructured(f) {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "file is not record-structured")
	}
	count, err := RecordCount(f)
	if err != nil {
		return nil, err
	}
	if uint32(idx) >= count {
		return nil, swiccerr.New(swiccerr.FsNotFound)
	}
	start := uint32(idx) * uint32(f.RecordSize)
	return f.Data[start : start+uint32(f.RecordSize)], nil
}

func recordStructured(f File) bool {
	return f.Item.Type == ItemTypeEFLinearFixed || f.Item.Type == ItemTypeEFCyclic
}
