package apduh

import (
	"github.com/swiccgo/swicc/pkg/apdu"
	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// Handler handles one APDU command, given how many procedure bytes the
// engine has already sent for it (0 on the first call). It returns the
// response to send; a returned error other than ApduUnhandled indicates an
// internal fault and is not meant to reach the wire as a status word (the
// FSM treats it as fatal).
type Handler func(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error)

// Amender inspects and may rewrite a response after a handler has produced
// it, e.g. to add vendor-specific bookkeeping. Registered once via
// RegisterAmend as an unconditional finalization hook, kept distinct from
// the proprietary-class delegate.
type Amender func(cmd apdu.Cmd, res *apdu.Res)

// Dispatcher demuxes APDU commands by CLA class and then, for the
// interindustry class, by INS byte via a 256-slot table.
type Dispatcher struct {
	interindustry [256]Handler
	proprietary   Handler
	amend         Amender
}

// NewDispatcher returns a Dispatcher with every interindustry INS handled:
// the four supported commands get their real handlers, every other slot
// gets handleUnknown.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	for i := range d.interindustry {
		d.interindustry[i] = handleUnknown
	}
	d.interindustry[0xA4] = handleSelect
	d.interindustry[0xB0] = handleReadBinary
	d.interindustry[0xB1] = handleReadBinary
	d.interindustry[0xB2] = handleReadRecord
	d.interindustry[0xB3] = handleReadRecord
	d.interindustry[0xC0] = handleGetResponse
	return d
}

// RegisterProprietary installs the handler used for every command in the
// proprietary CLA class, and given first chance to override interindustry
// commands before the built-in table runs. Returning ApduUnhandled from it
// falls through to the built-in interindustry handler.
func (d *Dispatcher) RegisterProprietary(h Handler) {
	d.proprietary = h
}

// RegisterAmend installs a hook run on every response just before Demux
// returns it, interindustry and proprietary alike.
func (d *Dispatcher) RegisterAmend(a Amender) {
	d.amend = a
}

// Demux runs the pre-dispatch rules and returns the response to send. It
// never returns a non-nil error for a well-formed cmd; errors are reserved
// for conditions the FSM must treat as fatal.
func (d *Dispatcher) Demux(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	res, err := d.demux(state, cmd, procedureCount)
	if err != nil {
		return apdu.Res{}, err
	}
	if d.amend != nil {
		d.amend(cmd, &res)
	}
	return res, nil
}

func (d *Dispatcher) demux(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	switch cmd.Hdr.CLA.Type {
	case apdu.CLATypeInvalid, apdu.CLATypeRFU:
		return apdu.Res{SW1: apdu.SW1CherCla, SW2: 0}, nil

	case apdu.CLATypeProprietary:
		if d.proprietary == nil {
			return apdu.Res{SW1: apdu.SW1CherIns, SW2: 0}, nil
		}
		res, err := d.proprietary(state, cmd, procedureCount)
		if err != nil && swiccerr.CodeOf(err) == swiccerr.ApduUnhandled {
			return apdu.Res{SW1: apdu.SW1CherIns, SW2: 0}, nil
		}
		return res, err

	case apdu.CLATypeInterindustry:
		if cmd.Hdr.INS != 0xC0 {
			state.RC.Reset()
		}
		if d.proprietary != nil {
			res, err := d.proprietary(state, cmd, procedureCount)
			if err == nil {
				return res, nil
			}
			if swiccerr.CodeOf(err) != swiccerr.ApduUnhandled {
				return apdu.Res{}, err
			}
		}
		return d.interindustry[cmd.Hdr.INS](state, cmd, procedureCount)

	default:
		return apdu.Res{SW1: apdu.SW1CherIns, SW2: 0}, nil
	}
}

func handleUnknown(state *State, cmd apdu.Cmd, procedureCount uint32) (apdu.Res, error) {
	return apdu.Res{SW1: apdu.SW1CherIns, SW2: 0}, nil
}
