package bertlv

import "github.com/swiccgo/swicc/pkg/swiccerr"

// LenForm identifies which of the four BER-TLV length encodings a length
// octet (or octet sequence) uses.
type LenForm int

const (
	LenFormInvalid LenForm = iota
	// LenFormDefiniteShort: a single octet, high bit clear, value 0-127.
	LenFormDefiniteShort
	// LenFormDefiniteLong: high bit set, low 7 bits give the count of
	// following octets (1-4 supported here) holding the big-endian value.
	LenFormDefiniteLong
	// LenFormIndefinite: 0x80, value terminated by a 0x00 0x00 EOC. Not
	// supported by this codec: SELECT responses never need it and
	// supporting it would require buffering an unbounded nested search for
	// the terminator.
	LenFormIndefinite
	// LenFormRFU: 0xFF, reserved for future use. Not supported.
	LenFormRFU
)

// LenLongMax is the maximum number of long-form length octets this codec
// accepts following the initial 0x8N octet. 4 octets covers lengths up to
// 2^32-1, far beyond any object this engine builds.
const LenLongMax = 4

// Length is the parsed form of a BER-TLV length.
type Length struct {
	Val  uint32
	Form LenForm
}

// decodeLength parses a length starting at buf[0], returning the length and
// the number of bytes it occupied.
func decodeLength(buf []byte) (Length, int, error) {
	if len(buf) < 1 {
		return Length{}, 0, swiccerr.New(swiccerr.DatoEnd)
	}

	b0 := buf[0]
	if b0&0x80 == 0 {
		return Length{Val: uint32(b0), Form: LenFormDefiniteShort}, 1, nil
	}
	if b0 == 0x80 {
		return Length{}, 0, swiccerr.Newf(swiccerr.ParamBad, "indefinite length form not supported")
	}
	if b0 == 0xFF {
		return Length{}, 0, swiccerr.Newf(swiccerr.ParamBad, "RFU length form not supported")
	}

	octetCount := int(b0 & 0x7F)
	if octetCount > LenLongMax {
		return Length{}, 0, swiccerr.Newf(swiccerr.ParamBad, "long length form of %d octets exceeds supported maximum", octetCount)
	}
	if len(buf) < 1+octetCount {
		return Length{}, 0, swiccerr.New(swiccerr.DatoEnd)
	}

	var val uint32
	for i := 0; i < octetCount; i++ {
		val = val<<8 | uint32(buf[1+i])
	}
	return Length{Val: val, Form: LenFormDefiniteLong}, 1 + octetCount, nil
}

// encodeLength returns the forward-ordered bytes for a definite length of
// val, choosing the shortest valid form.
func encodeLength(val uint32) ([]byte, error) {
	if val <= 127 {
		return []byte{byte(val)}, nil
	}

	var raw [LenLongMax]byte
	n := 0
	for shift := uint(LenLongMax-1) * 8; ; shift -= 8 {
		b := byte(val >> shift)
		if n > 0 || b != 0 || shift == 0 {
			raw[n] = b
			n++
		}
		if shift == 0 {
			break
		}
	}

	out := make([]byte, 1+n)
	out[0] = 0x80 | byte(n)
	copy(out[1:], raw[:n])
	return out, nil
}
