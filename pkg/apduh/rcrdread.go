package apduh

import (
	"github.com/swiccgo/swicc/pkg/apdu"
	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// handleReadRecord implements READ RECORD (INS 0xB2), ISO/IEC
// 7816-4:2020 p.82 §11.4.3. The odd instruction variant (0xB3,
// BER-TLV-bodied data), ID-based selection, and multi-record reads are not
// supported.
func handleReadRecord(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	if cmd.Hdr.INS != 0xB2 {
		return apdu.Res{SW1: apdu.SW1CherIns, SW2: 0}, nil
	}

	if procedureCount == 0 {
		return apdu.Res{SW1: apdu.SW1ProcAckAll, Data: make([]byte, 0)}, nil
	}
	if len(cmd.Data) != 0 {
		return apdu.Res{SW1: apdu.SW1CherLen, SW2: 0x02}, nil
	}

	p2Val := (cmd.Hdr.P2 & 0b1111_1000) >> 3
	byNumber := cmd.Hdr.P2&0b0000_0100 != 0
	what := cmd.Hdr.P2 & 0b0000_0011

	// "Only P1" is the only supported number-based mode; ID-based selection,
	// multi-file search (p2Val == 0x1F) and multi-record reads (what != 00)
	// are rejected up front. P1 values 0 and 0xFF are not record numbers.
	if cmd.Hdr.P2 == 0b1111_1000 || !byNumber || p2Val == 0b1_1111 || what != 0b00 {
		return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x81}, nil
	}
	if cmd.Hdr.P1 == 0x00 || cmd.Hdr.P1 == 0xFF {
		return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x86}, nil
	}

	rcrdIdx := cmd.Hdr.P1 - 1

	var ef fs.File
	var bySID bool
	var sid uint8
	if p2Val == 0 {
		if !state.VA.HasEF() {
			return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x82}, nil
		}
		ef = state.VA.CurEF
	} else {
		bySID = true
		sid = p2Val
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
		ef = f
	}

	rcrd, err := fs.Record(ef, rcrdIdx)
	if err != nil {
		if swiccerr.CodeOf(err) == swiccerr.FsNotFound {
			return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x83}, nil
		}
		return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
	}

	if cmd.P3 != uint8(len(rcrd)) {
		return apdu.Res{SW1: apdu.SW1CherLe, SW2: uint8(len(rcrd))}, nil
	}

	if bySID {
		if err := state.VA.SelectBySID(sid); err != nil {
			return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
		}
	}
	if err := state.VA.SelectRecordByIndex(rcrdIdx); err != nil {
		return apdu.Res{SW1: apdu.SW1CherUnk, SW2: 0}, nil
	}

	return apdu.Res{SW1: apdu.SW1NormNone, SW2: 0, Data: append([]byte(nil), rcrd...)}, nil
}
