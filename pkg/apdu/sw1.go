package apdu

// SW1 is the first status byte, ISO/IEC 7816-4:2020 p.17 §5.6 table 6, plus
// two synthetic values used only inside this engine to request more data
// under the T=0 procedure-byte protocol. They are assigned otherwise-unused
// byte values (0xFE, 0xFF) so they can share the SW1 type with genuine
// status bytes without colliding; the response serializer maps them to
// INS^0xFF / INS instead of writing them out literally (see DeparseRes).
type SW1 byte

const (
	// Normal processing.
	SW1NormNone          SW1 = 0x90
	SW1NormBytesAvailable SW1 = 0x61

	// Warning processing.
	SW1WarnNVMChgN SW1 = 0x62
	SW1WarnNVMChgM SW1 = 0x63

	// Execution error.
	SW1ExerNVMChgN SW1 = 0x64
	SW1ExerNVMChgM SW1 = 0x65
	SW1ExerSec     SW1 = 0x66

	// Checking error.
	SW1CherLen     SW1 = 0x67
	SW1CherClaFunc SW1 = 0x68
	SW1CherCmd     SW1 = 0x69
	SW1CherP1P2Info SW1 = 0x6A
	SW1CherP1P2    SW1 = 0x6B
	SW1CherLe      SW1 = 0x6C
	SW1CherIns     SW1 = 0x6D
	SW1CherCla     SW1 = 0x6E
	SW1CherUnk     SW1 = 0x6F

	// Procedure bytes, ISO/IEC 7816-3:2006 p.23 §10.3.3 table 11.
	SW1ProcNull   SW1 = 0x60
	SW1ProcAckOne SW1 = 0xFE
	SW1ProcAckAll SW1 = 0xFF
)

// sw2ZeroRequired is the set of SW1 values whose SW2 must be exactly zero.
var sw2ZeroRequired = map[SW1]bool{
	SW1NormNone: true,
	SW1CherP1P2: true,
	SW1CherIns:  true,
	SW1CherCla:  true,
	SW1CherUnk:  true,
}
