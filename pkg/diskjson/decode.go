package diskjson

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// Decode reads a JSON disk description from r and builds an in-memory
// fs.Disk from it: every tree's root and descendants are converted to
// fs.NodeSpec and laid out via fs.BuildTree exactly as fs.Disk.Save would
// produce them, then chained into a forest and indexed.
func Decode(r io.Reader) (*fs.Disk, error) {
	var doc Doc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "invalid disk JSON: %v", err)
	}

	if len(doc.Trees) == 0 {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "disk JSON declares no trees")
	}

	var head, tail *fs.Tree
	for i, node := range doc.Trees {
		wantType := fs.ItemTypeADF
		if i == 0 {
			wantType = fs.ItemTypeMF
		}

		spec, err := toNodeSpec(node)
		if err != nil {
			return nil, err
		}
		if spec.Type != wantType {
			return nil, swiccerr.Newf(swiccerr.ParamBad, "tree %d must be %q, got %q", i, itemTypeName(wantType), node.Type)
		}

		tree, err := fs.BuildTree(spec)
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = tree
		} else {
			tail.Next = tree
		}
		tail = tree
	}

	disk := fs.NewDisk(head)
	if err := disk.RebuildLUTID(); err != nil {
		return nil, err
	}
	if err := disk.RebuildLUTSIDAll(); err != nil {
		return nil, err
	}
	return disk, nil
}

// toNodeSpec converts one JSON node, and recursively its children, into an
// fs.NodeSpec.
func toNodeSpec(n Node) (fs.NodeSpec, error) {
	itemType, err := parseItemType(n.Type)
	if err != nil {
		return fs.NodeSpec{}, err
	}

	lcs, err := parseLCS(n.LCS)
	if err != nil {
		return fs.NodeSpec{}, err
	}

	id, err := parseHexUint16(n.ID)
	if err != nil {
		return fs.NodeSpec{}, swiccerr.Newf(swiccerr.ParamBad, "id %q: %v", n.ID, err)
	}
	sid, err := parseHexUint8(n.SID)
	if err != nil {
		return fs.NodeSpec{}, swiccerr.Newf(swiccerr.ParamBad, "sid %q: %v", n.SID, err)
	}

	spec := fs.NodeSpec{
		Type:       itemType,
		LCS:        lcs,
		ID:         id,
		SID:        sid,
		RecordSize: n.RecordSize,
	}

	switch itemType {
	case fs.ItemTypeMF, fs.ItemTypeDF:
		if len(n.Name) > fs.NameLen {
			return fs.NodeSpec{}, swiccerr.Newf(swiccerr.ParamBad, "name %q exceeds %d bytes", n.Name, fs.NameLen)
		}
		copy(spec.Name[:], n.Name)

	case fs.ItemTypeADF:
		aid, err := parseAID(n.AID)
		if err != nil {
			return fs.NodeSpec{}, err
		}
		spec.AID = aid

	case fs.ItemTypeEFTransparent, fs.ItemTypeHex:
		data, err := nodeData(n)
		if err != nil {
			return fs.NodeSpec{}, err
		}
		spec.Data = data

	case fs.ItemTypeEFLinearFixed, fs.ItemTypeEFCyclic:
		data, err := recordData(n)
		if err != nil {
			return fs.NodeSpec{}, err
		}
		spec.Data = data

	case fs.ItemTypeASCII:
		if n.Text != "" {
			spec.Data = []byte(n.Text)
		} else {
			data, err := nodeData(n)
			if err != nil {
				return fs.NodeSpec{}, err
			}
			spec.Data = data
		}

	case fs.ItemTypeDataObjectBERTLV:
		data, err := encodeTags(n.Tags)
		if err != nil {
			return fs.NodeSpec{}, err
		}
		spec.Data = data
	}

	if itemType.IsFolder() {
		spec.Children = make([]fs.NodeSpec, len(n.Children))
		for i, child := range n.Children {
			childSpec, err := toNodeSpec(child)
			if err != nil {
				return fs.NodeSpec{}, err
			}
			spec.Children[i] = childSpec
		}
	}

	return spec, nil
}

// nodeData decodes a node's hex-string Data field, tolerating its absence
// as empty content.
func nodeData(n Node) ([]byte, error) {
	if n.Data == "" {
		return nil, nil
	}
	data, err := hex.DecodeString(n.Data)
	if err != nil {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "data: %v", err)
	}
	return data, nil
}

// recordData builds a linear-fixed/cyclic EF's flat content buffer, either
// from an explicit list of per-record hex strings (each padded/validated
// against RecordSize) or from a single flat Data hex string.
func recordData(n Node) ([]byte, error) {
	if len(n.Records) == 0 {
		return nodeData(n)
	}
	if n.RecordSize == 0 {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "records given with record_size 0")
	}

	out := make([]byte, 0, len(n.Records)*int(n.RecordSize))
	for i, rec := range n.Records {
		b, err := hex.DecodeString(rec)
		if err != nil {
			return nil, swiccerr.Newf(swiccerr.ParamBad, "record %d: %v", i, err)
		}
		if len(b) > int(n.RecordSize) {
			return nil, swiccerr.Newf(swiccerr.ParamBad, "record %d is %d bytes, exceeds record_size %d", i, len(b), n.RecordSize)
		}
		padded := make([]byte, n.RecordSize)
		copy(padded, b)
		out = append(out, padded...)
	}
	return out, nil
}

func parseHexUint16(s string) (uint16, error) {
	if s == "" {
		return fs.IDMissing, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 2 {
		return 0, swiccerr.New(swiccerr.ParamBad)
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func parseHexUint8(s string) (uint8, error) {
	if s == "" {
		return fs.SIDMissing, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 1 {
		return 0, swiccerr.New(swiccerr.ParamBad)
	}
	return b[0], nil
}

func parseAID(s string) (fs.AID, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != fs.ADFAIDLen {
		return fs.AID{}, swiccerr.Newf(swiccerr.ParamBad, "aid must be %d hex bytes, got %q", fs.ADFAIDLen, s)
	}
	var aid fs.AID
	copy(aid.RID[:], b[:fs.ADFAIDRIDLen])
	copy(aid.PIX[:], b[fs.ADFAIDRIDLen:])
	return aid, nil
}

func parseItemType(s string) (fs.ItemType, error) {
	switch s {
	case "mf":
		return fs.ItemTypeMF, nil
	case "adf":
		return fs.ItemTypeADF, nil
	case "df":
		return fs.ItemTypeDF, nil
	case "ef_transparent":
		return fs.ItemTypeEFTransparent, nil
	case "ef_linear_fixed":
		return fs.ItemTypeEFLinearFixed, nil
	case "ef_cyclic":
		return fs.ItemTypeEFCyclic, nil
	case "data_object_bertlv":
		return fs.ItemTypeDataObjectBERTLV, nil
	case "hex":
		return fs.ItemTypeHex, nil
	case "ascii":
		return fs.ItemTypeASCII, nil
	default:
		return fs.ItemTypeInvalid, swiccerr.Newf(swiccerr.ParamBad, "unknown node type %q", s)
	}
}

func itemTypeName(t fs.ItemType) string {
	switch t {
	case fs.ItemTypeMF:
		return "mf"
	case fs.ItemTypeADF:
		return "adf"
	default:
		return "?"
	}
}

func parseLCS(s string) (fs.LCS, error) {
	switch s {
	case "", "activated":
		return fs.LCSOperActivated, nil
	case "deactivated":
		return fs.LCSOperDeactivated, nil
	case "terminated":
		return fs.LCSTerminated, nil
	default:
		return 0, swiccerr.Newf(swiccerr.ParamBad, "unknown lcs %q", s)
	}
}
