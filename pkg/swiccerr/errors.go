// Package swiccerr provides the return-code taxonomy shared across the
// engine. This is a leaf package with no internal dependencies so every
// other package (bertlv, fs, apdu, apduh, pps, fsm, card) can import it
// without causing import cycles.
//
// Import graph: swiccerr <- bertlv, fs <- apdu <- apduh <- fsm <- card
package swiccerr

import "fmt"

// RetCode is the sum type over every recoverable or fatal condition an
// engine operation can report.
type RetCode int

const (
	// Success is the distinguished zero value: every other code indicates a
	// recoverable or fatal condition.
	Success RetCode = iota

	// Error is a catch-all for conditions with no more specific code.
	Error

	// ParamBad indicates a caller passed an invalid parameter.
	ParamBad

	// ApduHdrTooShort indicates an APDU header did not contain enough bytes.
	ApduHdrTooShort

	// ApduUnhandled indicates no handler claimed the APDU command.
	ApduUnhandled

	// ApduResInvalid indicates a response structure failed validation
	// (e.g. SW2 incompatible with its SW1 class).
	ApduResInvalid

	// TpduHdrTooShort indicates a TPDU header did not contain enough bytes.
	TpduHdrTooShort

	// BufferTooShort indicates a fixed-size buffer could not hold the
	// requested data.
	BufferTooShort

	// PpsInvalid indicates a malformed PPS request (bad structure or check
	// byte).
	PpsInvalid

	// PpsFailed indicates the card declined a well-formed PPS proposal.
	PpsFailed

	// AtrInvalid indicates an ATR failed validation.
	AtrInvalid

	// FsNotFound indicates a filesystem lookup (by ID, SID, AID, or record
	// index) found no match.
	FsNotFound

	// DatoEnd indicates a BER-TLV decoder has exhausted its buffer.
	DatoEnd

	// NetConnQueueEmpty indicates a network adapter queue had nothing to
	// dequeue.
	NetConnQueueEmpty
)

func (c RetCode) String() string {
	switch c {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case ParamBad:
		return "ParamBad"
	case ApduHdrTooShort:
		return "ApduHdrTooShort"
	case ApduUnhandled:
		return "ApduUnhandled"
	case ApduResInvalid:
		return "ApduResInvalid"
	case TpduHdrTooShort:
		return "TpduHdrTooShort"
	case BufferTooShort:
		return "BufferTooShort"
	case PpsInvalid:
		return "PpsInvalid"
	case PpsFailed:
		return "PpsFailed"
	case AtrInvalid:
		return "AtrInvalid"
	case FsNotFound:
		return "FsNotFound"
	case DatoEnd:
		return "DatoEnd"
	case NetConnQueueEmpty:
		return "NetConnQueueEmpty"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Err wraps a RetCode as a Go error, optionally with a context message.
type Err struct {
	Code    RetCode
	Message string
}

// New returns an *Err for code with no extra context.
func New(code RetCode) *Err {
	return &Err{Code: code}
}

// Newf returns an *Err for code with a formatted message.
func Newf(code RetCode, format string, args ...any) *Err {
	return &Err{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Err) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a *Err with the same Code, so callers can
// write errors.Is(err, swiccerr.New(swiccerr.FsNotFound)).
func (e *Err) Is(target error) bool {
	t, ok := target.(*Err)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the RetCode carried by err, or Error if err is not a
// *Err (including nil, which maps to Success).
func CodeOf(err error) RetCode {
	if err == nil {
		return Success
	}
	if e, ok := err.(*Err); ok {
		return e.Code
	}
	return Error
}
