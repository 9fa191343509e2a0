package apdu

import "github.com/swiccgo/swicc/pkg/swiccerr"

// RC is the response-chaining buffer: APDU handlers enqueue a full response
// here, and GET RESPONSE dequeues it in parts. Invariant: offset <= length
// <= capacity (DataMax). The engine clears RC at the start of every
// non-GET-RESPONSE interindustry command (ISO/IEC 7816-4:2020 §5.3.4 leaves
// resumption across unrelated commands undefined; this engine makes it
// deterministically unsupported).
type RC struct {
	buf    [DataMax]byte
	length uint32
	offset uint32
}

// Reset returns the buffer to empty.
func (rc *RC) Reset() {
	rc.length = 0
	rc.offset = 0
}

// Enqueue appends data to the buffer. If it would not fit, the buffer is
// left unchanged and BufferTooShort is returned.
func (rc *RC) Enqueue(data []byte) error {
	if rc.length+uint32(len(data)) > DataMax {
		return swiccerr.New(swiccerr.BufferTooShort)
	}
	copy(rc.buf[rc.length:], data)
	rc.length += uint32(len(data))
	return nil
}

// Remaining reports how many bytes are left to dequeue.
func (rc *RC) Remaining() uint32 {
	return rc.length - rc.offset
}

// DequeueUpTo returns up to n bytes starting at the current offset,
// advancing the offset by however many bytes were actually returned. It
// never errors: callers compare len(result) against n themselves to detect
// a short read, since the handler layer needs to distinguish "drained
// exactly" from "fewer than requested were available" to pick the right
// status word.
func (rc *RC) DequeueUpTo(n uint32) []byte {
	avail := rc.Remaining()
	if n > avail {
		n = avail
	}
	out := append([]byte(nil), rc.buf[rc.offset:rc.offset+n]...)
	rc.offset += n
	return out
}
