package fsm

// Contact is a bitmask over the observed or requested state of the
// contact-level signals relevant to the transport FSM: VCC, RST, CLK, IO,
// SPU, each paired with a "valid" companion bit indicating the value was
// actually asserted by the interface rather than left floating.
// ISO/IEC 7816-3:2006 clause 5.1.1.
type Contact uint16

const (
	ContactVCC Contact = 1 << iota
	ContactValidVCC
	ContactRST
	ContactValidRST
	ContactCLK
	ContactValidCLK
	ContactSPU
	ContactValidSPU
	ContactIO
	ContactValidIO
)

// ContactValidAll is set when every contact's value is known (asserted),
// regardless of whether the values themselves are high or low.
const ContactValidAll = ContactValidVCC | ContactValidRST | ContactValidCLK | ContactValidSPU | ContactValidIO

// Ready is the contact combination expected at any point once the cold or
// warm reset sequence has completed and the card is operating normally.
// ISO/IEC 7816-3:2006 clause 6.2.1 figure 1.
const Ready = ContactRST | ContactVCC | ContactIO | ContactCLK | ContactValidAll
