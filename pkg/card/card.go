// Package card wires the contact-level FSM to a filesystem and APDU
// dispatcher into one top-level engine instance, ISO/IEC 7816-4:2020
// clause 12.2.2 and the ATR/transport rules of ISO/IEC 7816-3:2006.
// It owns no I/O: callers observe contact state and deliver bytes through
// Tick, exactly as pkg/fsm.Machine does, and get back bytes to transmit.
package card

import (
	"github.com/swiccgo/swicc/pkg/apduh"
	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/fsm"
	"github.com/swiccgo/swicc/pkg/metrics"
)

// fsmStateNames lists every fsm.State value's string form, in declaration
// order, so CardMetrics.SetFSMState can zero every state but the current
// one on each transition.
var fsmStateNames = []string{
	fsm.StateOff.String(),
	fsm.StateActivation.String(),
	fsm.StateResetCold.String(),
	fsm.StateAtrReq.String(),
	fsm.StateAtrRes.String(),
	fsm.StateResetWarm.String(),
	fsm.StatePpsReq.String(),
	fsm.StateCmdWait.String(),
	fsm.StateCmdProcedure.String(),
	fsm.StateCmdData.String(),
}

// Atr is the fixed 25-byte answer-to-reset this engine emits on every
// cold and warm reset: direct convention, T=0 with TA2/TD2 present,
// T=15 global interface bytes, 15 historical bytes (COMPACT-TLV), TCK.
var Atr = []byte{
	0x3B, 0xDF, 0x96, 0x00, 0x90, 0x10, 0x3F, 0x07, 0x00,
	0x80, 0x31, 0xE0, 0x67, 's', 'w', 'i', 'c', 'c', 0x00, 0x00,
	0x73, 0xFE, 0x21, 0x00,
	0x06,
}

// State is the card's full engine instance: the filesystem and selection
// state APDU handlers operate on, the dispatcher demuxing commands to
// them, and the transport FSM driving the wire protocol over both. One
// State belongs to exactly one logical connection; it is not safe for
// concurrent use, since a card session is inherently single-threaded and
// cooperative — callers serving multiple connections give each its own
// State.
type State struct {
	AState     *apduh.State
	Dispatcher *apduh.Dispatcher
	Machine    *fsm.Machine

	// Metrics is optional; a nil value (the default) disables collection
	// with zero overhead. Set it directly after New returns.
	Metrics *metrics.CardMetrics
}

// New builds a State over disk, parked in fsm.StateOff and ready for the
// interface to apply VCC. It emits the standard Atr on reset.
func New(disk *fs.Disk) (*State, error) {
	return NewWithAtr(disk, Atr)
}

// NewWithAtr builds a State like New, but emits atr on reset instead of the
// standard Atr. Used when a deployment is configured with an ATR override
// (advanced/testing use only — most callers want New).
func NewWithAtr(disk *fs.Disk, atr []byte) (*State, error) {
	astate := &apduh.State{Disk: disk}
	if err := astate.Reset(); err != nil {
		return nil, err
	}
	dispatcher := apduh.NewDispatcher()
	return &State{
		AState:     astate,
		Dispatcher: dispatcher,
		Machine:    fsm.NewMachine(atr, dispatcher, astate),
	}, nil
}

// RegisterProprietary installs the handler for the proprietary CLA class.
// See apduh.Dispatcher.RegisterProprietary.
func (s *State) RegisterProprietary(h apduh.Handler) {
	s.Dispatcher.RegisterProprietary(h)
}

// RegisterAmend installs a hook run on every response before it is
// serialized. See apduh.Dispatcher.RegisterAmend.
func (s *State) RegisterAmend(a apduh.Amender) {
	s.Dispatcher.RegisterAmend(a)
}

// Tick advances the transport FSM by one logical step. See
// fsm.Machine.Tick for the exact contract. When s.Metrics is set, it also
// records the resulting FSM state and any cold/warm reset crossed during
// the call.
func (s *State) Tick(contacts fsm.Contact, rx []byte) fsm.Result {
	prev := s.Machine.State
	res := s.Machine.Tick(contacts, rx)

	if s.Metrics != nil {
		s.Metrics.SetFSMState(fsmStateNames, s.Machine.State.String())
		if prev != fsm.StateResetCold && s.Machine.State == fsm.StateResetCold {
			s.Metrics.RecordReset("cold")
		}
		if prev == fsm.StateResetWarm {
			s.Metrics.RecordReset("warm")
		}
	}

	return res
}

// RCRemaining reports the response-chaining buffer's remaining length, useful for
// adapters that want to report card state without reaching into AState
// directly.
func (s *State) RCRemaining() uint32 {
	return s.AState.RC.Remaining()
}
