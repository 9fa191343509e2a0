// Package fs implements the in-memory, serializable filesystem model: a
// forest of trees (one MF tree plus zero or more ADF trees), each tree a
// contiguous byte buffer holding depth-first-laid-out files addressed by
// parent-relative offsets rather than pointers, plus the ID/SID lookup
// tables and the validity-area selector that tracks the currently selected
// file hierarchy.
package fs

import (
	"encoding/binary"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// ItemType is the sum type over every kind of filesystem item.
type ItemType uint8

const (
	ItemTypeInvalid ItemType = iota
	ItemTypeMF
	ItemTypeADF
	ItemTypeDF
	ItemTypeEFTransparent
	ItemTypeEFLinearFixed
	ItemTypeEFCyclic
	ItemTypeDataObjectBERTLV
	ItemTypeHex
	ItemTypeASCII
)

// IsFolder reports whether t is a container that may have children (MF, DF,
// or ADF).
func (t ItemType) IsFolder() bool {
	return t == ItemTypeMF || t == ItemTypeDF || t == ItemTypeADF
}

// IsEF reports whether t is one of the supported elementary file kinds.
func (t ItemType) IsEF() bool {
	return t == ItemTypeEFTransparent || t == ItemTypeEFLinearFixed || t == ItemTypeEFCyclic
}

// LCS is a file's life cycle status, ISO/IEC 7816-4:2020 p.31 §7.4.10.
//
// Only three of the five standard states are modeled: NoInformation,
// Creation and Initialization are never produced by any handler in this
// engine and are omitted.
type LCS uint8

const (
	LCSOperActivated LCS = iota
	LCSOperDeactivated
	LCSTerminated
)

// Byte returns the ISO 7816-4 table 15 encoding of the life cycle status.
func (l LCS) Byte() byte {
	switch l {
	case LCSOperActivated:
		return 0b0000_0101
	case LCSOperDeactivated:
		return 0b0000_0100
	case LCSTerminated:
		return 0b0000_1100
	default:
		return 0
	}
}

// ItemHeaderSize is the on-disk size of an ItemHeader: size(4) +
// parent-relative offset(4) + type(1) + lcs(1), big-endian.
const ItemHeaderSize = 10

// ItemHeader is the base header shared by every filesystem item.
type ItemHeader struct {
	// Size is the total span of this item in its tree buffer, including
	// its own headers and, for folders, every descendant laid out
	// contiguously after it. This lets a reader skip over an entire
	// subtree without parsing it.
	Size uint32

	// OffsetPrel is the offset, in bytes, from the start of the parent's
	// header to the start of this item's header. Zero means this item is
	// a tree root with no parent.
	OffsetPrel uint32

	Type ItemType
	LCS  LCS
}

func decodeItemHeader(buf []byte) (ItemHeader, error) {
	if len(buf) < ItemHeaderSize {
		return ItemHeader{}, swiccerr.New(swiccerr.BufferTooShort)
	}
	return ItemHeader{
		Size:       binary.BigEndian.Uint32(buf[0:4]),
		OffsetPrel: binary.BigEndian.Uint32(buf[4:8]),
		Type:       ItemType(buf[8]),
		LCS:        LCS(buf[9]),
	}, nil
}

func (h ItemHeader) encode(buf []byte) error {
	if len(buf) < ItemHeaderSize {
		return swiccerr.New(swiccerr.BufferTooShort)
	}
	binary.BigEndian.PutUint32(buf[0:4], h.Size)
	binary.BigEndian.PutUint32(buf[4:8], h.OffsetPrel)
	buf[8] = byte(h.Type)
	buf[9] = byte(h.LCS)
	return nil
}
