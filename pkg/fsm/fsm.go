// Package fsm implements the contact-level transport state machine, ISO/IEC
// 7816-3:2006 clause 6: activation, cold/warm reset, ATR emission, PPS
// negotiation, and T=0 command framing.
package fsm

import (
	"github.com/swiccgo/swicc/pkg/apdu"
	"github.com/swiccgo/swicc/pkg/apduh"
	"github.com/swiccgo/swicc/pkg/pps"
	"github.com/swiccgo/swicc/pkg/swiccerr"
	"github.com/swiccgo/swicc/pkg/tp"
)

// State is one of the ten transport states.
type State int

const (
	StateOff State = iota
	StateActivation
	StateResetCold
	StateAtrReq
	StateAtrRes
	StateResetWarm
	StatePpsReq
	StateCmdWait
	StateCmdProcedure
	StateCmdData
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "Off"
	case StateActivation:
		return "Activation"
	case StateResetCold:
		return "ResetCold"
	case StateAtrReq:
		return "AtrReq"
	case StateAtrRes:
		return "AtrRes"
	case StateResetWarm:
		return "ResetWarm"
	case StatePpsReq:
		return "PpsReq"
	case StateCmdWait:
		return "CmdWait"
	case StateCmdProcedure:
		return "CmdProcedure"
	case StateCmdData:
		return "CmdData"
	default:
		return "Unknown"
	}
}

// Result is what a single Tick produces: bytes to transmit, the contact
// lines the card wants to drive, and how many bytes it needs next before
// it can make further progress.
type Result struct {
	Tx         []byte
	ContactOut Contact
	NextRxLen  int
}

// Machine is the transport driver. It owns no I/O of its own: the caller
// observes contacts and delivers bytes, and Tick never blocks.
type Machine struct {
	State      State
	AState     *apduh.State
	Dispatcher *apduh.Dispatcher
	TP         tp.Params
	Atr        []byte

	tpduHdr []byte
	ppsBuf  []byte
	cmd     apdu.Cmd
	procCnt uint32
}

// NewMachine builds a Machine in the Off state with default transmission
// parameters, ready to drive atr once activated.
func NewMachine(atr []byte, dispatcher *apduh.Dispatcher, state *apduh.State) *Machine {
	return &Machine{
		State:      StateOff,
		AState:     state,
		Dispatcher: dispatcher,
		TP:         tp.Default(),
		Atr:        atr,
	}
}

// Tick advances the machine by one logical step given the currently
// observed contact state and any newly received bytes. Several internal
// transitions may happen within one Tick call when a transition needs no
// further input to make progress (e.g. cold reset completing straight into
// writing the ATR); the caller only sees the final Result, with every Tx
// byte produced along the way appended in order.
func (m *Machine) Tick(contacts Contact, rx []byte) Result {
	var acc Result
	for i := 0; i < 8; i++ {
		res, advance := m.step(contacts, rx)
		acc.Tx = append(acc.Tx, res.Tx...)
		acc.ContactOut |= res.ContactOut
		acc.NextRxLen = res.NextRxLen
		if !advance {
			return acc
		}
		rx = nil
	}
	return acc
}

// step runs the handler for the current state. The bool return reports
// whether the machine can keep advancing within the same Tick call
// (true) or must wait for the caller to supply NextRxLen more bytes
// (false).
func (m *Machine) step(contacts Contact, rx []byte) (Result, bool) {
	switch m.State {
	case StateOff:
		return m.stepOff(contacts)
	case StateActivation:
		return m.stepActivation(contacts)
	case StateResetCold:
		return m.stepResetCold(contacts)
	case StateAtrReq:
		return m.stepAtrReq(contacts)
	case StateAtrRes:
		return m.stepAtrRes(contacts, rx)
	case StateResetWarm:
		return m.stepResetWarm()
	case StatePpsReq:
		return m.stepPpsReq(contacts, rx)
	case StateCmdWait:
		return m.stepCmdWait(contacts, rx)
	case StateCmdProcedure:
		return m.stepCmdProcedure(contacts)
	case StateCmdData:
		return m.stepCmdData(contacts, rx)
	default:
		m.State = StateOff
		return Result{}, false
	}
}

func (m *Machine) stepOff(c Contact) (Result, bool) {
	if c == ContactVCC|ContactValidAll {
		m.State = StateActivation
		return Result{}, true
	}
	return Result{}, false
}

func (m *Machine) stepActivation(c Contact) (Result, bool) {
	if c == (ContactVCC | ContactIO | ContactCLK | ContactValidAll) {
		m.State = StateResetCold
		return Result{}, true
	}
	if c&(ContactVCC|ContactValidVCC) == ContactVCC|ContactValidVCC {
		// Wait for the interface to drive IO/CLK, as long as VCC stays on.
		return Result{}, false
	}
	m.State = StateOff
	return Result{}, true
}

func (m *Machine) stepResetCold(c Contact) (Result, bool) {
	if c == Ready {
		m.State = StateAtrReq
		return Result{ContactOut: ContactIO | ContactValidIO}, true
	}
	if c == Ready&^ContactRST {
		// RST still low; interface needs more time to raise it.
		return Result{}, false
	}
	m.State = StateOff
	return Result{}, true
}

func (m *Machine) stepAtrReq(c Contact) (Result, bool) {
	if c == Ready {
		m.State = StateAtrRes
		return Result{Tx: m.Atr, ContactOut: ContactIO | ContactValidIO, NextRxLen: 1}, false
	}
	m.State = StateOff
	return Result{}, true
}

func (m *Machine) stepAtrRes(c Contact, rx []byte) (Result, bool) {
	if c == Ready && len(rx) == 1 {
		if rx[0] == pps.PPSS {
			m.ppsBuf = append([]byte(nil), rx...)
			m.State = StatePpsReq
			return Result{}, true
		}
		m.tpduHdr = append([]byte(nil), rx...)
		m.State = StateCmdWait
		return Result{}, true
	}
	m.State = StateOff
	return Result{}, true
}

// stepResetWarm handles a warm reset, which leads straight back into
// requesting the ATR (ISO/IEC 7816-3:2006 clause 6.2.3): once the
// underlying engine state and transmission parameters have been reset,
// this advances there instead of stalling.
func (m *Machine) stepResetWarm() (Result, bool) {
	if err := m.AState.Reset(); err != nil {
		m.State = StateOff
		return Result{}, true
	}
	m.TP = tp.Default()
	m.State = StateAtrReq
	return Result{}, true
}

func (m *Machine) stepPpsReq(c Contact, rx []byte) (Result, bool) {
	if c != Ready || len(m.ppsBuf)+len(rx) > pps.LenMax {
		m.ppsBuf = nil
		m.State = StateOff
		return Result{}, true
	}
	m.ppsBuf = append(m.ppsBuf, rx...)

	if len(m.ppsBuf) < 2 {
		return Result{NextRxLen: 2 - len(m.ppsBuf)}, false
	}

	expLen, err := pps.Len(m.ppsBuf)
	if err != nil {
		m.ppsBuf = nil
		m.State = StateOff
		return Result{}, true
	}
	if len(m.ppsBuf) < expLen {
		return Result{NextRxLen: expLen - len(m.ppsBuf)}, false
	}

	params, resp, err := pps.Negotiate(m.ppsBuf)
	m.ppsBuf = nil
	switch swiccerr.CodeOf(err) {
	case swiccerr.Success:
		m.TP = tp.FromIndices(params.FiIdx, params.DiIdx)
		m.tpduHdr = nil
		m.State = StateCmdWait
		return Result{Tx: resp}, true
	case swiccerr.PpsFailed, swiccerr.PpsInvalid:
		// A decline gets the card's own response back; an invalid request gets
		// silence. Either way the card waits for another PPS or a command.
		m.State = StateAtrRes
		return Result{Tx: resp, NextRxLen: 1}, false
	default:
		m.State = StateOff
		return Result{}, true
	}
}

func (m *Machine) stepCmdWait(c Contact, rx []byte) (Result, bool) {
	if c != Ready {
		m.State = StateOff
		return Result{}, true
	}
	m.tpduHdr = append(m.tpduHdr, rx...)
	if len(m.tpduHdr) < apdu.TPDUHdrRawLen {
		return Result{NextRxLen: apdu.TPDUHdrRawLen - len(m.tpduHdr)}, false
	}

	hdr, err := apdu.ParseTPDUHdr(m.tpduHdr)
	m.tpduHdr = nil
	if err != nil {
		return Result{NextRxLen: apdu.TPDUHdrRawLen}, false
	}
	m.cmd = hdr.Cmd(nil)
	m.procCnt = 0
	m.State = StateCmdProcedure
	return Result{}, true
}

func (m *Machine) stepCmdProcedure(c Contact) (Result, bool) {
	if c != Ready {
		m.State = StateOff
		return Result{}, true
	}

	res, err := m.Dispatcher.Demux(m.AState, m.cmd, m.procCnt)
	if err != nil {
		m.State = StateCmdWait
		return Result{NextRxLen: apdu.TPDUHdrRawLen}, false
	}

	tx, err := apdu.DeparseRes(m.cmd, res)
	if err != nil {
		m.State = StateCmdWait
		return Result{NextRxLen: apdu.TPDUHdrRawLen}, false
	}

	if res.SW1 == apdu.SW1ProcAckAll || res.SW1 == apdu.SW1ProcAckOne {
		m.procCnt++
		m.State = StateCmdData
		return Result{Tx: tx, NextRxLen: len(res.Data)}, false
	}

	m.State = StateCmdWait
	return Result{Tx: tx, NextRxLen: apdu.TPDUHdrRawLen}, false
}

func (m *Machine) stepCmdData(c Contact, rx []byte) (Result, bool) {
	if c != Ready {
		m.State = StateOff
		return Result{}, true
	}
	if len(m.cmd.Data)+len(rx) > apdu.DataMax {
		m.State = StateCmdWait
		return Result{NextRxLen: apdu.TPDUHdrRawLen}, false
	}
	m.cmd.Data = append(m.cmd.Data, rx...)
	m.State = StateCmdProcedure
	return Result{}, true
}
