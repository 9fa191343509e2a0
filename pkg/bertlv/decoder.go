package bertlv

import "github.com/swiccgo/swicc/pkg/swiccerr"

// TLV is a fully parsed tag-length pair. The value bytes are not copied
// into it; callers reach them through Decoder.Current's returned value
// slice or sub-decoder.
type TLV struct {
	Tag    Tag
	Length Length
}

// Decoder walks a BER-TLV buffer one object at a time, forward only. It
// never recurses into constructed values on its own: call Current to get a
// sub-decoder scoped to the current object's value bytes.
type Decoder struct {
	buf      []byte
	offset   uint32 // start of the next object to parse
	cur      TLV
	curStart uint32 // start of the last object parsed by Next
	curHdr   uint32 // header length (tag+length octets) of that object
	began    bool
}

// NewDecoder returns a Decoder over buf. Call Next before the first Current.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Next parses the object at the decoder's current position and advances
// past it, making it available via Current. It returns swiccerr.DatoEnd
// once the buffer is exhausted.
func (d *Decoder) Next() error {
	if d.offset >= uint32(len(d.buf)) {
		return swiccerr.New(swiccerr.DatoEnd)
	}

	rest := d.buf[d.offset:]
	tag, tagLen, err := decodeTag(rest)
	if err != nil {
		return err
	}
	length, lenLen, err := decodeLength(rest[tagLen:])
	if err != nil {
		return err
	}
	hdrLen := uint32(tagLen + lenLen)
	if uint32(len(rest))-hdrLen < length.Val {
		return swiccerr.Newf(swiccerr.BufferTooShort, "object at offset %d declares length %d past end of buffer", d.offset, length.Val)
	}

	d.cur = TLV{Tag: tag, Length: length}
	d.curStart = d.offset
	d.curHdr = hdrLen
	d.began = true
	d.offset += hdrLen + length.Val
	return nil
}

// Current returns the last object parsed by Next, its raw value bytes, and
// a sub-decoder bound to those value bytes (useful when Tag.Constructed is
// true). It is an error to call Current before the first successful Next.
func (d *Decoder) Current() (TLV, []byte, *Decoder, error) {
	if !d.began {
		return TLV{}, nil, nil, swiccerr.Newf(swiccerr.ParamBad, "Current called before Next")
	}
	start := d.curStart + d.curHdr
	end := start + d.cur.Length.Val
	val := d.buf[start:end]
	return d.cur, val, NewDecoder(val), nil
}

// Offset returns the decoder's current read position in its buffer.
func (d *Decoder) Offset() uint32 {
	return d.offset
}

// Done reports whether the buffer has been fully consumed.
func (d *Decoder) Done() bool {
	return d.offset >= uint32(len(d.buf))
}
