package apduh

import (
	"github.com/swiccgo/swicc/pkg/apdu"
	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// handleReadBinary implements READ BINARY (INS 0xB0), ISO/IEC
// 7816-4:2020 p.74 §11.3.3. The odd instruction variant (0xB1,
// BER-TLV-bodied data) is not supported.
func handleReadBinary(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	if cmd.Hdr.INS != 0xB0 {
		return apdu.Res{SW1: apdu.SW1CherIns, SW2: 0}, nil
	}

	if procedureCount == 0 {
		return apdu.Res{SW1: apdu.SW1ProcAckAll, Data: make([]byte, 0)}, nil
	}
	if len(cmd.Data) != 0 {
		return apdu.Res{SW1: apdu.SW1CherLen, SW2: 0x02}, nil
	}

	lenExpected := cmd.P3
	sidUse := cmd.Hdr.P1&0b1000_0000 != 0

	var file fs.File
	var sid uint8
	var offset uint16

	if sidUse {
		if cmd.Hdr.P1&0b0110_0000 != 0 {
			return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x86}, nil
		}
		sid = cmd.Hdr.P1 & 0b0001_1111
		offset = uint16(cmd.Hdr.P2)

		if state.VA.CurTree == nil {
			return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x82}, nil
		}
		f, err := state.VA.CurTree.LookupBySID(sid)
		if err != nil {
			if swiccerr.CodeOf(err) == swiccerr.FsNotFound {
				return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x82}, nil
			}
			return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
		}
		file = f
	} else {
		offset = uint16(cmd.Hdr.P1&0b0111_1111)<<8 | uint16(cmd.Hdr.P2)
		if !state.VA.HasEF() {
			return apdu.Res{SW1: apdu.SW1CherCmd, SW2: 0x86}, nil
		}
		file = state.VA.CurEF
	}

	if file.Item.Type != fs.ItemTypeEFTransparent {
		return apdu.Res{SW1: apdu.SW1CherCmd, SW2: 0x81}, nil
	}

	if uint32(offset) >= uint32(len(file.Data)) {
		return apdu.Res{SW1: apdu.SW1CherP1P2, SW2: 0}, nil
	}

	lenReadable := uint32(len(file.Data)) - uint32(offset)
	lenRead := uint32(lenExpected)
	if lenRead > lenReadable {
		lenRead = lenReadable
	}
	data := append([]byte(nil), file.Data[offset:uint32(offset)+lenRead]...)

	res := apdu.Res{Data: data}
	if lenRead < uint32(lenExpected) {
		res.SW1 = apdu.SW1WarnNVMChgN
		res.SW2 = 0x82
	} else {
		res.SW1 = apdu.SW1NormNone
		res.SW2 = 0
	}

	if sidUse {
		if err := state.VA.SelectBySID(sid); err != nil {
			return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
		}
	}
	return res, nil
}
