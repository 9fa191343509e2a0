package fs

import (
	"encoding/binary"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// NodeSpec is a logical description of one filesystem item and (for
// folders) its children, used to build a Tree's serialized buffer from
// scratch. pkg/diskjson and tests construct disks this way instead of
// hand-assembling byte buffers.
type NodeSpec struct {
	Type       ItemType
	LCS        LCS
	ID         uint16
	SID        uint8
	Name       [NameLen]byte
	AID        AID
	RecordSize uint8
	Data       []byte
	Children   []NodeSpec
}

// BuildTree serializes root (and, recursively, its children) into a new
// Tree. root must be an MF or ADF, matching the tree-root invariant.
func BuildTree(root NodeSpec) (*Tree, error) {
	if root.Type != ItemTypeMF && root.Type != ItemTypeADF {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "tree root must be MF or ADF, got %d", root.Type)
	}
	buf, err := buildNode(root)
	if err != nil {
		return nil, err
	}
	return NewTree(buf), nil
}

// buildNode lays out n depth-first: header, then file-type-specific header,
// then either raw data (EF) or the concatenated bytes of every child
// (folder). Children are built bottom-up so each child's total size is
// known before its own header must be written; buildNode then patches each
// child's OffsetPrel once their position relative to n is known.
func buildNode(n NodeSpec) ([]byte, error) {
	headerSize := HeaderSize(n.Type)

	var body []byte
	if n.Type.IsFolder() {
		offset := headerSize
		for _, child := range n.Children {
			childBuf, err := buildNode(child)
			if err != nil {
				return nil, err
			}
			binary.BigEndian.PutUint32(childBuf[4:8], offset)
			body = append(body, childBuf...)
			offset += uint32(len(childBuf))
		}
	} else {
		body = n.Data
	}

	size := headerSize + uint32(len(body))
	buf := make([]byte, size)

	ih := ItemHeader{Size: size, Type: n.Type, LCS: n.LCS}
	if err := ih.encode(buf); err != nil {
		return nil, err
	}
	fh := FileHeader{ID: n.ID, SID: n.SID}
	if err := fh.encode(buf[ItemHeaderSize:]); err != nil {
		return nil, err
	}

	pos := ItemHeaderSize + FileHeaderSize
	switch n.Type {
	case ItemTypeMF, ItemTypeDF:
		copy(buf[pos:pos+NameLen], n.Name[:])
	case ItemTypeADF:
		copy(buf[pos:pos+ADFAIDRIDLen], n.AID.RID[:])
		copy(buf[pos+ADFAIDRIDLen:pos+ADFAIDLen], n.AID.PIX[:])
	case ItemTypeEFLinearFixed, ItemTypeEFCyclic:
		buf[pos] = n.RecordSize
	}

	copy(buf[headerSize:], body)
	return buf, nil
}
