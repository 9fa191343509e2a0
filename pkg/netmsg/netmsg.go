// Package netmsg implements the wire framing for the optional network
// adapter: a 4-byte length header followed by contact state,
// expected-response length, a control byte, and up to 258 data bytes. It is
// pure encode/decode over []byte and io.Reader/io.Writer — no socket
// handling lives here, which stays in the caller that owns the connection.
package netmsg

import (
	"encoding/binary"
	"io"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// Ctrl is the message's control byte: requests carry a server->client
// directive, responses carry client->server status.
type Ctrl uint8

const (
	CtrlNone                Ctrl = 0x00
	CtrlKeepalive           Ctrl = 0x01
	CtrlMockResetColdPPSYes Ctrl = 0x02
	CtrlMockResetWarmPPSYes Ctrl = 0x03
	CtrlMockResetColdPPSNo  Ctrl = 0x04
	CtrlMockResetWarmPPSNo  Ctrl = 0x05
	CtrlSuccess             Ctrl = 0xF0
	CtrlFailure             Ctrl = 0x0F
)

// DataMax is the largest data payload a message can carry: 256 response
// bytes plus a trailing SW1/SW2 pair.
const DataMax = 258

// fixedLen is the size of the contact-state, expected-length, and control
// fields that precede the data payload.
const fixedLen = 4 + 4 + 1

// HdrLen is the size of the length header that precedes every message.
const HdrLen = 4

// Msg is one decoded network message.
type Msg struct {
	ContactState uint32
	ExpectedLen  uint32
	Ctrl         Ctrl
	Data         []byte
}

// Encode serializes m. The length header covers everything after itself:
// the fixed fields plus len(m.Data).
func Encode(m Msg) ([]byte, error) {
	if len(m.Data) > DataMax {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "netmsg: data length %d exceeds max %d", len(m.Data), DataMax)
	}

	size := fixedLen + len(m.Data)
	buf := make([]byte, HdrLen+size)
	binary.BigEndian.PutUint32(buf[0:4], uint32(size))
	binary.BigEndian.PutUint32(buf[4:8], m.ContactState)
	binary.BigEndian.PutUint32(buf[8:12], m.ExpectedLen)
	buf[12] = byte(m.Ctrl)
	copy(buf[13:], m.Data)
	return buf, nil
}

// Decode reads one message from r: the length header, then exactly that
// many bytes of data fields. It reads in two phases, each with
// io.ReadFull: the header first, then a second read once the length has
// been range-checked.
func Decode(r io.Reader) (Msg, error) {
	var hdr [HdrLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Msg{}, err
	}
	size := binary.BigEndian.Uint32(hdr[:])
	if size < fixedLen || size > fixedLen+DataMax {
		return Msg{}, swiccerr.Newf(swiccerr.ParamBad, "netmsg: message size %d out of range", size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return Msg{}, err
	}

	return Msg{
		ContactState: binary.BigEndian.Uint32(body[0:4]),
		ExpectedLen:  binary.BigEndian.Uint32(body[4:8]),
		Ctrl:         Ctrl(body[8]),
		Data:         append([]byte(nil), body[fixedLen:]...),
	}, nil
}
