package logger

import "context"

// Standard field keys used across the engine and its adapters.
const (
	KeyConnID = "conn_id" // Connection identifier assigned by the network adapter
	KeyState  = "state"   // Current FSM state name
	KeyINS    = "ins"     // Instruction byte of the command being processed
	KeySW1    = "sw1"     // Status word first byte (symbolic name)
	KeySW2    = "sw2"     // Status word second byte
)

type ctxKey struct{}

// ConnContext carries fields worth attaching to every log line for the
// duration of one contact-card connection.
type ConnContext struct {
	ConnID string
	State  string
	INS    uint8
}

// WithConn returns a context carrying lc, retrievable with FromContext.
func WithConn(ctx context.Context, lc *ConnContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, lc)
}

// FromContext returns the ConnContext attached to ctx, or nil.
func FromContext(ctx context.Context) *ConnContext {
	lc, _ := ctx.Value(ctxKey{}).(*ConnContext)
	return lc
}
