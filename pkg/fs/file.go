package fs

import (
	"encoding/binary"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// NameLen is the fixed width of an MF/DF name.
const NameLen = 16

// ADFAIDRIDLen and ADFAIDPIXLen give the two components of an ADF's AID
// (application identifier), per ETSI TS 101 220 and ISO/IEC 7816-4:2020
// §12.3.4.
const (
	ADFAIDRIDLen = 5
	ADFAIDPIXLen = 11
	ADFAIDLen    = ADFAIDRIDLen + ADFAIDPIXLen
)

// FileHeaderSize is the on-disk size of FileHeader: id(2 BE) + sid(1).
const FileHeaderSize = 3

// IDMissing and SIDMissing are the sentinel "absent" values for ID and SID.
const (
	IDMissing  = 0
	SIDMissing = 0
)

// FileHeader is the common header following ItemHeader on every file.
type FileHeader struct {
	ID  uint16
	SID uint8
}

func decodeFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) < FileHeaderSize {
		return FileHeader{}, swiccerr.New(swiccerr.BufferTooShort)
	}
	return FileHeader{ID: binary.BigEndian.Uint16(buf[0:2]), SID: buf[2]}, nil
}

func (h FileHeader) encode(buf []byte) error {
	if len(buf) < FileHeaderSize {
		return swiccerr.New(swiccerr.BufferTooShort)
	}
	binary.BigEndian.PutUint16(buf[0:2], h.ID)
	buf[2] = h.SID
	return nil
}

// AID is an application identifier: a registered provider ID followed by a
// proprietary extension.
type AID struct {
	RID [ADFAIDRIDLen]byte
	PIX [ADFAIDPIXLen]byte
}

// Bytes returns the 16-byte concatenation of RID and PIX.
func (a AID) Bytes() []byte {
	out := make([]byte, 0, ADFAIDLen)
	out = append(out, a.RID[:]...)
	return append(out, a.PIX[:]...)
}

// typeHeaderSize returns the on-disk size of the type-specific header that
// follows FileHeader for the given item type.
func typeHeaderSize(t ItemType) uint32 {
	switch t {
	case ItemTypeMF, ItemTypeDF:
		return NameLen
	case ItemTypeADF:
		return ADFAIDLen
	case ItemTypeEFLinearFixed, ItemTypeEFCyclic:
		return 1
	case ItemTypeEFTransparent:
		return 0
	default:
		return 0
	}
}

// HeaderSize is the total header size (item + file + type-specific) for a
// file of type t, i.e. the offset from the start of the item's header to
// its data.
func HeaderSize(t ItemType) uint32 {
	return ItemHeaderSize + FileHeaderSize + typeHeaderSize(t)
}

// File is the parsed, in-memory view of one filesystem item. It borrows its
// Data slice from the owning Tree's buffer; callers must not retain Data
// beyond the lifetime of that buffer.
type File struct {
	Item       ItemHeader
	OffsetTrel uint32 // tree-relative offset to the start of this item's header
	FileHeader
	Name       [NameLen]byte // MF, DF
	AID        AID           // ADF
	RecordSize uint8         // linear-fixed, cyclic
	Data       []byte        // raw content following the headers
}

// parseFile parses the file starting at offsetTrel in buf.
func parseFile(buf []byte, offsetTrel uint32) (File, error) {
	if uint64(offsetTrel)+ItemHeaderSize > uint64(len(buf)) {
		return File{}, swiccerr.New(swiccerr.BufferTooShort)
	}
	item, err := decodeItemHeader(buf[offsetTrel:])
	if err != nil {
		return File{}, err
	}
	if uint64(offsetTrel)+uint64(item.Size) > uint64(len(buf)) {
		return File{}, swiccerr.Newf(swiccerr.BufferTooShort, "item at %d declares size %d past end of tree", offsetTrel, item.Size)
	}

	rest := buf[offsetTrel+ItemHeaderSize:]
	fileHdr, err := decodeFileHeader(rest)
	if err != nil {
		return File{}, err
	}
	rest = rest[FileHeaderSize:]

	f := File{Item: item, OffsetTrel: offsetTrel, FileHeader: fileHdr}
	typeHdrSize := typeHeaderSize(item.Type)
	if uint32(len(rest)) < typeHdrSize {
		return File{}, swiccerr.New(swiccerr.BufferTooShort)
	}

	switch item.Type {
	case ItemTypeMF, ItemTypeDF:
		copy(f.Name[:], rest[:NameLen])
	case ItemTypeADF:
		copy(f.AID.RID[:], rest[:ADFAIDRIDLen])
		copy(f.AID.PIX[:], rest[ADFAIDRIDLen:ADFAIDLen])
	case ItemTypeEFLinearFixed, ItemTypeEFCyclic:
		f.RecordSize = rest[0]
	}

	dataStart := offsetTrel + HeaderSize(item.Type)
	dataEnd := offsetTrel + item.Size
	if item.Type.IsFolder() {
		// A folder's "data" is its children, not a flat byte blob; callers
		// walk children via Tree.Foreach instead of reading Data.
		f.Data = nil
	} else {
		f.Data = buf[dataStart:dataEnd]
	}
	return f, nil
}
