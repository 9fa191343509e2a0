// Package tp holds the transmission-parameter lookup tables and the ETU
// formula defined by ISO/IEC 7816-3:2006 clause 8.3, shared by PPS
// negotiation and the contact-level FSM.
package tp

// ConfNum is the number of unique Fi/Di/fmax configurations addressable by
// a 4-bit PPS1 nibble.
const ConfNum = 16

// DefaultIdx is the table index in force right after any reset, before a
// PPS negotiation changes it.
const DefaultIdx = 1

// Fi is the clock rate conversion integer lookup, indexed by the high
// nibble of PPS1. A zero entry is RFU.
var Fi = [ConfNum]uint16{
	0b0000: 372, 0b0001: 372, 0b0010: 558, 0b0011: 744,
	0b0100: 1116, 0b0101: 1488, 0b0110: 1860, 0b0111: 0,
	0b1000: 0, 0b1001: 512, 0b1010: 768, 0b1011: 1024,
	0b1100: 1536, 0b1101: 2048, 0b1110: 0, 0b1111: 0,
}

// Di is the baud rate adjustment integer lookup, indexed by the low nibble
// of PPS1. A zero entry is RFU.
var Di = [ConfNum]uint8{
	0b0000: 0, 0b0001: 1, 0b0010: 2, 0b0011: 4,
	0b0100: 8, 0b0101: 16, 0b0110: 32, 0b0111: 64,
	0b1000: 12, 0b1001: 20, 0b1010: 0, 0b1011: 0,
	0b1100: 0, 0b1101: 0, 0b1110: 0, 0b1111: 0,
}

// Fmax is the maximum supported clock frequency lookup (kHz), indexed by
// the high nibble of PPS1. A zero entry is RFU.
var Fmax = [ConfNum]uint32{
	0b0000: 4000, 0b0001: 5000, 0b0010: 6000, 0b0011: 8000,
	0b0100: 12000, 0b0101: 16000, 0b0110: 20000, 0b0111: 0,
	0b1000: 0, 0b1001: 5000, 0b1010: 7500, 0b1011: 10000,
	0b1100: 15000, 0b1101: 20000, 0b1110: 0, 0b1111: 0,
}

// Params is the negotiated transmission configuration in force for the
// current session.
type Params struct {
	FiIdx uint8
	DiIdx uint8
	ETU   uint32
}

// Default returns the transmission parameters in force right after a
// reset, before any PPS negotiation.
func Default() Params {
	p := Params{FiIdx: DefaultIdx, DiIdx: DefaultIdx}
	p.ETU = etu(Fi[p.FiIdx], Di[p.DiIdx], Fmax[p.FiIdx])
	return p
}

// FromIndices resolves fi_idx/di_idx into a Params, computing the ETU.
func FromIndices(fiIdx, diIdx uint8) Params {
	p := Params{FiIdx: fiIdx, DiIdx: diIdx}
	p.ETU = etu(Fi[fiIdx], Di[diIdx], Fmax[fiIdx])
	return p
}

// etu is elementary time unit = Fi / (Di * fmax), ISO/IEC 7816-3:2006
// clause 8.3.
func etu(fi uint16, di uint8, fmax uint32) uint32 {
	if di == 0 || fmax == 0 {
		return 0
	}
	return uint32(fi) / (uint32(di) * fmax)
}
