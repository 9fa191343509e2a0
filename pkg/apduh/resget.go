package apduh

import "github.com/swiccgo/swicc/pkg/apdu"

// handleGetResponse implements GET RESPONSE (INS 0xC0), ISO/IEC
// 7816-4:2020 p.82 §11.4.3, draining the response
// chaining buffer a SELECT (or other 0x61-signaling command) filled.
func handleGetResponse(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	if procedureCount == 0 {
		return apdu.Res{SW1: apdu.SW1ProcAckAll, Data: make([]byte, 0)}, nil
	}
	if len(cmd.Data) != 0 {
		return apdu.Res{SW1: apdu.SW1CherLen, SW2: 0x01}, nil
	}
	if cmd.Hdr.P1 != 0 || cmd.Hdr.P2 != 0 {
		return apdu.Res{SW1: apdu.SW1CherP1P2Info, SW2: 0x86}, nil
	}
	if cmd.P3 == 0 {
		return apdu.Res{SW1: apdu.SW1NormNone, SW2: 0}, nil
	}

	requested := uint32(cmd.P3)
	if state.RC.Remaining() < requested {
		return apdu.Res{SW1: apdu.SW1WarnNVMChgN, SW2: 0x82}, nil
	}

	data := state.RC.DequeueUpTo(requested)
	remaining := state.RC.Remaining()
	if remaining > 0 {
		sw2 := remaining
		if sw2 > 0xFF {
			sw2 = 0xFF
		}
		return apdu.Res{SW1: apdu.SW1NormBytesAvailable, SW2: byte(sw2), Data: data}, nil
	}
	return apdu.Res{SW1: apdu.SW1NormNone, SW2: 0, Data: data}, nil
}
