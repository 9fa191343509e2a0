// Package apduh implements the interindustry APDU command handlers
// (SELECT, READ BINARY, READ RECORD, GET RESPONSE) and the INS-indexed
// dispatch table that demuxes incoming commands to them. It sits above
// pkg/apdu (parsing/serialization) and pkg/fs (the filesystem and
// validity area it operates on).
package apduh

import (
	"github.com/swiccgo/swicc/pkg/apdu"
	"github.com/swiccgo/swicc/pkg/fs"
)

// State is everything a handler needs: the filesystem it selects within,
// the validity area tracking the current selection, and the response
// chaining buffer GET RESPONSE drains. pkg/card owns the long-lived
// instance of this and feeds it to Dispatcher.Demux per command.
type State struct {
	Disk *fs.Disk
	VA   fs.ValidityArea
	RC   apdu.RC
}

// Reset re-initializes the validity area to point at the MF and clears the
// response-chaining buffer, as happens on a cold or warm card reset.
func (s *State) Reset() error {
	s.RC.Reset()
	return s.VA.Reset(s.Disk)
}
