package bertlv

import "github.com/swiccgo/swicc/pkg/swiccerr"

// Encoder builds a BER-TLV object (or sequence of objects) by writing into
// its destination buffer from the end toward the start. Value bytes are
// written first, then the tag+length header that precedes them — so a
// constructed object's total length is known by construction instead of
// requiring a separate size pass over its children.
//
// Passing a nil buf to NewEncoder puts the encoder in dry-run mode: every
// write is bounds-checked against size but nothing is copied, so a caller
// can measure the exact encoded size of a structure before allocating.
type Encoder struct {
	buf    []byte // destination, sized exactly to size; nil in dry-run mode
	size   uint32 // total capacity available to this encoder
	offset uint32 // bytes already written, growing from the end of buf
	lenVal uint32 // length of value bytes written since the last Header call
}

// NewEncoder returns an Encoder that writes into the last size bytes of buf
// (or, if buf is nil, simulates writing into a buffer of that capacity).
func NewEncoder(buf []byte, size uint32) *Encoder {
	return &Encoder{buf: buf, size: size}
}

// Size reports the total bytes written so far, i.e. the final encoded
// length once the top-level object's header has been written.
func (e *Encoder) Size() uint32 {
	return e.offset
}

// Data appends raw value bytes, writing them immediately before whatever
// has already been written. Call it once per primitive object's value,
// before the matching Header call.
func (e *Encoder) Data(data []byte) error {
	n := uint32(len(data))
	if e.offset+n > e.size {
		return swiccerr.Newf(swiccerr.BufferTooShort, "need %d more bytes, have %d", n, e.size-e.offset)
	}
	if e.buf != nil {
		start := e.size - e.offset - n
		copy(e.buf[start:start+n], data)
	}
	e.offset += n
	e.lenVal += n
	return nil
}

// Header writes tag followed by the definite-form length of whatever has
// been written since the last Header call (via Data or NestedEnd),
// immediately before that data, then resets the pending-length counter.
func (e *Encoder) Header(tag Tag) error {
	tagBytes, err := encodeTag(tag)
	if err != nil {
		return err
	}
	lenBytes, err := encodeLength(e.lenVal)
	if err != nil {
		return err
	}

	hdr := make([]byte, 0, len(tagBytes)+len(lenBytes))
	hdr = append(hdr, tagBytes...)
	hdr = append(hdr, lenBytes...)
	n := uint32(len(hdr))

	if e.offset+n > e.size {
		return swiccerr.Newf(swiccerr.BufferTooShort, "need %d more bytes, have %d", n, e.size-e.offset)
	}
	if e.buf != nil {
		start := e.size - e.offset - n
		copy(e.buf[start:start+n], hdr)
	}
	e.offset += n
	e.lenVal = 0
	return nil
}

// NestedStart returns a child Encoder scoped to the room remaining in e, for
// building a constructed object's value as a nested sequence of objects. It
// is an error to call NestedStart while e has pending, unflushed value data
// (i.e. after Data but before the matching Header).
func (e *Encoder) NestedStart() (*Encoder, error) {
	if e.lenVal != 0 {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "NestedStart called with %d bytes of unflushed value data", e.lenVal)
	}
	childSize := e.size - e.offset
	var childBuf []byte
	if e.buf != nil {
		childBuf = e.buf[:childSize]
	}
	return NewEncoder(childBuf, childSize), nil
}

// NestedEnd absorbs everything child has written as pending value data of
// e, as if a single Data call had written it. Call Header on e afterward to
// emit the constructed object's own tag and length. It is an error to call
// NestedEnd while e has pending, unflushed value data of its own.
func (e *Encoder) NestedEnd(child *Encoder) error {
	if e.lenVal != 0 {
		return swiccerr.Newf(swiccerr.ParamBad, "NestedEnd called with %d bytes of unflushed value data", e.lenVal)
	}
	e.offset += child.offset
	e.lenVal += child.offset
	return nil
}
