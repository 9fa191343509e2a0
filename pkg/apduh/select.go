package apduh

import (
	"github.com/swiccgo/swicc/pkg/apdu"
	"github.com/swiccgo/swicc/pkg/bertlv"
	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// selectMeth is the file-selection method encoded in SELECT's P1.
type selectMeth int

const (
	selectMethRFU selectMeth = iota
	selectMethByID
	selectMethDFNameOrAID
	selectMethMFPath
	selectMethDFPath
)

// selectDataReq is the response template requested by SELECT's P2.
type selectDataReq int

const (
	selectDataReqFCI selectDataReq = iota
	selectDataReqFCP
	selectDataReqFMD
	selectDataReqAbsent
	selectDataReqRFU
)

// Tags used to build FCP/FMD/FCI templates, ISO/IEC 7816-4:2020 p.27
// §7.4.3 table 11.
var (
	tagFCP      = bertlv.NewTag(bertlv.TagClassApplication, true, 2)
	tagFMD      = bertlv.NewTag(bertlv.TagClassApplication, true, 4)
	tagFCI      = bertlv.NewTag(bertlv.TagClassApplication, true, 15)
	tagDataSize = bertlv.NewTag(bertlv.TagClassContext, false, 0)
	tagDescr    = bertlv.NewTag(bertlv.TagClassContext, false, 2)
	tagFileID   = bertlv.NewTag(bertlv.TagClassContext, false, 3)
	tagDFName   = bertlv.NewTag(bertlv.TagClassContext, false, 4)
	tagSID      = bertlv.NewTag(bertlv.TagClassContext, false, 8)
	tagLCS      = bertlv.NewTag(bertlv.TagClassContext, false, 10)
)

// handleSelect implements SELECT (INS 0xA4), ISO/IEC 7816-4:2020 p.74
// §11.2.2.
func handleSelect(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	if cmd.Hdr.P2&0b1111_0000 != 0 {
		return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x86}, nil
	}

	if procedureCount == 0 {
		if len(cmd.Data) != 0 {
			return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
		}
		if cmd.P3 > 0 {
			return apdu.Res{SW1: apdu.SW1ProcAckAll, Data: make([]byte, cmd.P3)}, nil
		}
	}
	if procedureCount >= 1 && uint8(len(cmd.Data)) != cmd.P3 {
		return apdu.Res{SW1: apdu.SW1CherLen, SW2: 0x02}, nil
	}

	var meth selectMeth
	switch cmd.Hdr.P1 {
	case 0b0000_0000:
		meth = selectMethByID
	case 0b0000_0100:
		meth = selectMethDFNameOrAID
	case 0b0000_1000:
		meth = selectMethMFPath
	case 0b0000_1001:
		meth = selectMethDFPath
	default:
		return apdu.Res{SW1: apdu.SW1CherP1P2, SW2: 0}, nil
	}

	occFirst := cmd.Hdr.P2&0b0000_0011 == 0b00

	var dataReq selectDataReq
	switch cmd.Hdr.P2 & 0b0000_1100 {
	case 0b0000_0000:
		dataReq = selectDataReqFCI
	case 0b0000_0100:
		dataReq = selectDataReqFCP
	case 0b0000_1000:
		dataReq = selectDataReqFMD
	case 0b0000_1100:
		dataReq = selectDataReqAbsent
	default:
		dataReq = selectDataReqRFU
	}
	if dataReq == selectDataReqRFU {
		return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x86}, nil
	}

	var selErr error
	switch meth {
	case selectMethByID:
		if len(cmd.Data) != 2 {
			selErr = swiccerr.New(swiccerr.ParamBad)
		} else {
			fid := uint16(cmd.Data[0])<<8 | uint16(cmd.Data[1])
			selErr = state.VA.SelectByID(state.Disk, fid)
		}
	case selectMethDFNameOrAID:
		// DF-name lookup is not implemented: the selection only completes
		// when the data looks like an AID (first occurrence, RID-length to
		// full-AID-length data), and is otherwise reported as not
		// understood.
		if !occFirst || len(cmd.Data) < fs.ADFAIDRIDLen || len(cmd.Data) > fs.ADFAIDLen {
			selErr = swiccerr.New(swiccerr.ApduUnhandled)
		} else {
			pixLen := uint32(len(cmd.Data)) - fs.ADFAIDRIDLen
			selErr = state.VA.SelectADF(state.Disk, cmd.Data, pixLen)
		}
	case selectMethMFPath:
		if !occFirst || len(cmd.Data) < 2 {
			selErr = swiccerr.New(swiccerr.ParamBad)
		} else {
			selErr = state.VA.SelectByPath(state.Disk, fs.Path{Type: fs.PathTypeMF, IDs: idsFromBytes(cmd.Data)})
		}
	case selectMethDFPath:
		if !occFirst || len(cmd.Data) < 2 {
			selErr = swiccerr.New(swiccerr.ParamBad)
		} else {
			selErr = state.VA.SelectByPath(state.Disk, fs.Path{Type: fs.PathTypeDF, IDs: idsFromBytes(cmd.Data)})
		}
	}

	if selErr != nil {
		if swiccerr.CodeOf(selErr) == swiccerr.FsNotFound {
			return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x82}, nil
		}
		return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
	}

	var selected fs.File
	if state.VA.HasEF() {
		selected = state.VA.CurEF
	} else {
		selected = state.VA.CurDF
	}

	if dataReq == selectDataReqAbsent {
		return apdu.Res{SW1: apdu.SW1NormNone, SW2: 0}, nil
	}

	tmpl, err := buildSelectTemplate(selected, dataReq)
	if err != nil {
		return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
	}
	if err := state.RC.Enqueue(tmpl); err != nil {
		return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
	}
	return apdu.Res{SW1: apdu.SW1NormBytesAvailable, SW2: byte(len(tmpl))}, nil
}

// idsFromBytes splits a path's raw data into big-endian 16-bit file IDs.
func idsFromBytes(b []byte) []uint16 {
	ids := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		ids = append(ids, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return ids
}

// buildSelectTemplate encodes the FCP, FMD, or FCI (both nested in one
// template) response data object for the selected file.
func buildSelectTemplate(f fs.File, req selectDataReq) ([]byte, error) {
	dry := bertlv.NewEncoder(nil, apdu.DataMax)
	if err := encodeSelectTemplate(dry, f, req); err != nil {
		return nil, err
	}
	n := dry.Size()

	buf := make([]byte, n)
	enc := bertlv.NewEncoder(buf, n)
	if err := encodeSelectTemplate(enc, f, req); err != nil {
		return nil, err
	}
	return buf, nil
}

func encodeSelectTemplate(enc *bertlv.Encoder, f fs.File, req selectDataReq) error {
	var outer *bertlv.Encoder
	var err error
	if req == selectDataReqFCI {
		outer, err = enc.NestedStart()
	} else {
		outer = enc
	}
	if err != nil {
		return err
	}

	if req == selectDataReqFCI || req == selectDataReqFCP {
		if err := encodeFCP(outer, f); err != nil {
			return err
		}
	}
	if req == selectDataReqFCI || req == selectDataReqFMD {
		fmdEnc, err := outer.NestedStart()
		if err != nil {
			return err
		}
		if err := outer.NestedEnd(fmdEnc); err != nil {
			return err
		}
		if err := outer.Header(tagFMD); err != nil {
			return err
		}
	}

	if req == selectDataReqFCI {
		if err := enc.NestedEnd(outer); err != nil {
			return err
		}
		return enc.Header(tagFCI)
	}
	return nil
}

func encodeFCP(enc *bertlv.Encoder, f fs.File) error {
	fcp, err := enc.NestedStart()
	if err != nil {
		return err
	}

	descr, err := fs.Descriptor(f)
	if err != nil {
		return err
	}
	if err := fcp.Data([]byte{descr}); err != nil {
		return err
	}
	if err := fcp.Header(tagDescr); err != nil {
		return err
	}

	switch f.Item.Type {
	case fs.ItemTypeMF, fs.ItemTypeDF:
		if err := fcp.Data(f.Name[:]); err != nil {
			return err
		}
		if err := fcp.Header(tagDFName); err != nil {
			return err
		}
	case fs.ItemTypeADF:
		if err := fcp.Data(f.AID.Bytes()); err != nil {
			return err
		}
		if err := fcp.Header(tagDFName); err != nil {
			return err
		}
	}

	if f.ID != fs.IDMissing {
		if err := fcp.Data([]byte{byte(f.ID >> 8), byte(f.ID)}); err != nil {
			return err
		}
		if err := fcp.Header(tagFileID); err != nil {
			return err
		}
	}

	if err := fcp.Data([]byte{f.Item.LCS.Byte()}); err != nil {
		return err
	}
	if err := fcp.Header(tagLCS); err != nil {
		return err
	}

	if f.SID != fs.SIDMissing {
		if err := fcp.Data([]byte{f.SID}); err != nil {
			return err
		}
		if err := fcp.Header(tagSID); err != nil {
			return err
		}
	}

	size := uint32(len(f.Data))
	if err := fcp.Data([]byte{byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)}); err != nil {
		return err
	}
	if err := fcp.Header(tagDataSize); err != nil {
		return err
	}

	if err := enc.NestedEnd(fcp); err != nil {
		return err
	}
	return enc.Header(tagFCP)
}
