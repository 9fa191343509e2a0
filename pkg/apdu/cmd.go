package apdu

import "github.com/swiccgo/swicc/pkg/swiccerr"

// CmdHdrRawLen is the length of the raw 4-byte APDU command header
// (CLA, INS, P1, P2).
const CmdHdrRawLen = 4

// TPDUHdrRawLen is the length of the 5-byte TPDU header the FSM accumulates
// before dispatching a command: the APDU header plus P3.
const TPDUHdrRawLen = CmdHdrRawLen + 1

// CmdHdr is the parsed APDU command header.
type CmdHdr struct {
	CLA CLA
	INS byte
	P1  byte
	P2  byte
}

// Cmd is a fully parsed APDU command: header plus data field. P3 is carried
// separately since it means different things depending on direction
// (Lc for outgoing data, Le for expected response length) and is absent
// entirely once data framing is already resolved.
type Cmd struct {
	Hdr  CmdHdr
	P3   byte
	HasP3 bool
	Data []byte
}

// ParseCmd parses a complete raw APDU message: 4-byte header followed by up
// to DataMax data bytes, with no separate P3 (used once the FSM has already
// assembled the full command body via the procedure-byte protocol).
func ParseCmd(buf []byte) (Cmd, error) {
	if len(buf) < CmdHdrRawLen || len(buf) > CmdHdrRawLen+DataMax {
		return Cmd{}, swiccerr.New(swiccerr.ApduHdrTooShort)
	}
	cmd := Cmd{
		Hdr: CmdHdr{
			CLA: ParseCLA(buf[0]),
			INS: buf[1],
			P1:  buf[2],
			P2:  buf[3],
		},
	}
	if len(buf) > CmdHdrRawLen {
		cmd.Data = append([]byte(nil), buf[CmdHdrRawLen:]...)
	}
	return cmd, nil
}

// TPDUHdr is the 5-byte header (CLA, INS, P1, P2, P3) the FSM accumulates
// before the APDU dispatcher takes over.
type TPDUHdr struct {
	CLA CLA
	INS byte
	P1  byte
	P2  byte
	P3  byte
}

// ParseTPDUHdr parses the 5-byte TPDU header.
func ParseTPDUHdr(buf []byte) (TPDUHdr, error) {
	if len(buf) < TPDUHdrRawLen {
		return TPDUHdr{}, swiccerr.New(swiccerr.TpduHdrTooShort)
	}
	return TPDUHdr{
		CLA: ParseCLA(buf[0]),
		INS: buf[1],
		P1:  buf[2],
		P2:  buf[3],
		P3:  buf[4],
	}, nil
}

// Cmd builds a Cmd from the TPDU header plus the data bytes collected by
// the procedure-byte protocol.
func (h TPDUHdr) Cmd(data []byte) Cmd {
	return Cmd{
		Hdr:   CmdHdr{CLA: h.CLA, INS: h.INS, P1: h.P1, P2: h.P2},
		P3:    h.P3,
		HasP3: true,
		Data:  data,
	}
}
