package apdu

import "github.com/swiccgo/swicc/pkg/swiccerr"

// Res is a fully formed APDU response: a status word plus optional data.
type Res struct {
	SW1  SW1
	SW2  byte
	Data []byte
}

// DeparseRes serializes res into wire bytes for the command it answers.
// The two procedure SW1 values are single-byte-only and carry no data or
// SW2: PROC_ACK_ALL serializes to cmd.Hdr.INS, PROC_ACK_ONE to
// cmd.Hdr.INS^0xFF, PROC_NULL to the literal byte 0x60. Every other SW1
// serializes as data bytes followed by {byte(SW1), SW2}.
func DeparseRes(cmd Cmd, res Res) ([]byte, error) {
	if len(res.Data) > DataMax {
		return nil, swiccerr.New(swiccerr.Error)
	}

	switch res.SW1 {
	case SW1ProcNull:
		if len(res.Data) != 0 || res.SW2 != 0 {
			return nil, swiccerr.New(swiccerr.ApduResInvalid)
		}
		return []byte{byte(SW1ProcNull)}, nil

	case SW1ProcAckAll, SW1ProcAckOne:
		if res.SW2 != 0 {
			return nil, swiccerr.New(swiccerr.ApduResInvalid)
		}
		if res.SW1 == SW1ProcAckOne {
			return []byte{cmd.Hdr.INS ^ 0xFF}, nil
		}
		return []byte{cmd.Hdr.INS}, nil

	default:
		if sw2ZeroRequired[res.SW1] && res.SW2 != 0 {
			return nil, swiccerr.New(swiccerr.ApduResInvalid)
		}
		out := make([]byte, 0, len(res.Data)+2)
		out = append(out, res.Data...)
		out = append(out, byte(res.SW1), res.SW2)
		return out, nil
	}
}
