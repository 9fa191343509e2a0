package fs

import "github.com/swiccgo/swicc/pkg/swiccerr"

// Descriptor returns the single-byte file descriptor (ISO/IEC 7816-4:2020
// p.27 §7.4.3 table 12): bit 3 marks a DF/MF/ADF category, the low bits
// otherwise give the EF structure (transparent, linear-fixed, cyclic).
// Shareability (bit 6) is never set by this engine.
func Descriptor(f File) (byte, error) {
	switch f.Item.Type {
	case ItemTypeMF, ItemTypeADF, ItemTypeDF:
		return 0b0011_1000, nil
	case ItemTypeEFTransparent:
		return 0b0000_1001, nil
	case ItemTypeEFLinearFixed:
		return 0b0000_1010, nil
	case ItemTypeEFCyclic:
		return 0b0000_1110, nil
	default:
		return 0, swiccerr.New(swiccerr.ParamBad)
	}
}
