// Package pps implements PPS (protocol and parameter selection) request
// parsing and response negotiation, ISO/IEC 7816-3:2006 clause 9.
package pps

import (
	"github.com/swiccgo/swicc/pkg/swiccerr"
	"github.com/swiccgo/swicc/pkg/tp"
)

// PPSS is the mandatory first byte of every PPS request and response.
const PPSS = 0xFF

// LenMax is the longest possible PPS message: PPSS, PPS0, PPS1, PPS2,
// PPS3, PCK.
const LenMax = 6

const (
	pps0MaskPPS1 = 0b0001_0000
	pps0MaskPPS2 = 0b0010_0000
	pps0MaskPPS3 = 0b0100_0000
	pps0MaskRFU  = 0b1000_0000
)

// Params is the outcome of a successful negotiation: the protocol type
// proposed and the Fi/Di/SPU values that were agreed.
type Params struct {
	T     uint8
	FiIdx uint8
	DiIdx uint8
	SPU   uint8
}

// checksum XORs every byte of buf together, per clause 9.2 — a well-formed
// message (request or response) XORs to zero once the check byte is
// included.
func checksum(buf []byte) byte {
	var pck byte
	for _, b := range buf {
		pck ^= b
	}
	return pck
}

// Len computes the expected total length of a PPS message by inspecting
// its PPS0 byte. buf must hold at least PPSS and PPS0.
func Len(buf []byte) (int, error) {
	if len(buf) < 2 || buf[0] != PPSS {
		return 0, swiccerr.New(swiccerr.PpsInvalid)
	}
	n := 3 // PPSS, PPS0, PCK
	pps0 := buf[1]
	if pps0&pps0MaskPPS1 != 0 {
		n++
	}
	if pps0&pps0MaskPPS2 != 0 {
		n++
	}
	if pps0&pps0MaskPPS3 != 0 {
		n++
	}
	return n, nil
}

// parse validates and decodes a complete PPS request.
func parse(buf []byte) (Params, error) {
	if len(buf) < 2 || len(buf) > LenMax || buf[0] != PPSS || checksum(buf) != 0 {
		return Params{}, swiccerr.New(swiccerr.PpsInvalid)
	}

	pps0 := buf[1]
	if pps0&pps0MaskRFU != 0 {
		return Params{}, swiccerr.New(swiccerr.PpsInvalid)
	}

	// Fi/Di default to the standard's reset configuration whenever the
	// request carries no PPS1 byte at all — absence means "no change",
	// not index 0.
	params := Params{T: pps0 & 0x0F, FiIdx: tp.DefaultIdx, DiIdx: tp.DefaultIdx}
	next := 2
	for _, mask := range []byte{pps0MaskPPS1, pps0MaskPPS2, pps0MaskPPS3} {
		present := pps0&mask != 0
		if !present {
			continue
		}
		if next >= len(buf) {
			return Params{}, swiccerr.New(swiccerr.PpsInvalid)
		}
		b := buf[next]
		next++
		switch mask {
		case pps0MaskPPS1:
			params.FiIdx = (b & 0xF0) >> 4
			params.DiIdx = b & 0x0F
		case pps0MaskPPS2:
			params.SPU = b
		case pps0MaskPPS3:
			if b != 0 {
				return Params{}, swiccerr.New(swiccerr.PpsInvalid)
			}
		}
	}
	return params, nil
}

// deparse builds the response message for a negotiated proposal. It
// echoes PPS2/PPS3 verbatim when present, but strips PPS1 from the
// response (reverting to the currently-in-force values) whenever the
// request proposed no change worth keeping: either PPS1 was absent, or
// the proposal lands back on the default Fi/Di indices.
func deparse(pps0 byte, params Params) []byte {
	resp := make([]byte, 0, LenMax)
	resp = append(resp, PPSS, pps0)

	if pps0&pps0MaskPPS1 != 0 && !(params.FiIdx == tp.DefaultIdx && params.DiIdx == tp.DefaultIdx) {
		resp = append(resp, params.FiIdx<<4|params.DiIdx&0x0F)
	} else {
		resp[1] &^= pps0MaskPPS1
	}
	if pps0&pps0MaskPPS2 != 0 {
		resp = append(resp, params.SPU)
	}
	if pps0&pps0MaskPPS3 != 0 {
		resp = append(resp, 0)
	}
	resp = append(resp, checksum(resp))
	return resp
}

// Negotiate parses a PPS request and produces the response to send back.
// On success it returns the negotiated Params and the bytes to transmit; a
// proposal of the default Fi/Di indices is accepted with PPS1 left out of
// the response. A well-formed request whose response differs from it in
// any other way yields PpsFailed together with that response, which the
// caller sends as the decline; a malformed request yields PpsInvalid.
//
// Acceptance only ever falls back to the defaults when the proposal itself
// already names the default Fi/Di indices — there is no comparison against
// whatever configuration is currently in force.
func Negotiate(req []byte) (Params, []byte, error) {
	params, err := parse(req)
	if err != nil {
		return Params{}, nil, err
	}

	resp := deparse(req[1], params)

	// A response that leaves out a proposed PPS1 accepts the default
	// indices the proposal named.
	stripped := req[1]&pps0MaskPPS1 != 0 && resp[1]&pps0MaskPPS1 == 0
	if !stripped && string(resp) != string(req) {
		// The response was still built (and is handed back so the caller can
		// send it as the card's decline), it just didn't match the proposal.
		return Params{}, resp, swiccerr.New(swiccerr.PpsFailed)
	}
	return params, resp, nil
}
