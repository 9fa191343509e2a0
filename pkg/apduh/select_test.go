package apduh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiccgo/swicc/pkg/apdu"
)

func TestSelectMFByIDRequestsThenResolves(t *testing.T) {
	state := newTestState(t)
	cmd := apdu.Cmd{Hdr: apdu.CmdHdr{CLA: apdu.ParseCLA(0x00), INS: 0xA4, P1: 0x00, P2: 0x04}, P3: 2, HasP3: true}

	res, err := handleSelect(state, cmd, 0)
	require.NoError(t, err)
	assert.Equal(t, apdu.SW1ProcAckAll, res.SW1)

	cmd.Data = []byte{0x3F, 0x00}
	res, err = handleSelect(state, cmd, 1)
	require.NoError(t, err)
	assert.Equal(t, apdu.SW1NormBytesAvailable, res.SW1)
	assert.Greater(t, res.SW2, byte(0))
	assert.EqualValues(t, res.SW2, state.RC.Remaining())
}

func TestSelectUnknownIDReturnsNotFound(t *testing.T) {
	state := newTestState(t)
	cmd := apdu.Cmd{Hdr: apdu.CmdHdr{CLA: apdu.ParseCLA(0x00), INS: 0xA4, P1: 0x00, P2: 0x0C}, P3: 2, Data: []byte{0x99, 0x99}}

	res, err := handleSelect(state, cmd, 1)
	require.NoError(t, err)
	assert.Equal(t, apdu.SW1CherP1P2Info, res.SW1)
	assert.EqualValues(t, 0x82, res.SW2)
}

func TestSelectBadP1ReturnsCherP1P2(t *testing.T) {
	state := newTestState(t)
	cmd := apdu.Cmd{Hdr: apdu.CmdHdr{CLA: apdu.ParseCLA(0x00), INS: 0xA4, P1: 0x07, P2: 0x0C}, P3: 0}

	res, err := handleSelect(state, cmd, 1)
	require.NoError(t, err)
	assert.Equal(t, apdu.SW1CherP1P2, res.SW1)
}

func TestSelectRFUP2UpperBitsRejected(t *testing.T) {
	state := newTestState(t)
	cmd := apdu.Cmd{Hdr: apdu.CmdHdr{CLA: apdu.ParseCLA(0x00), INS: 0xA4, P1: 0x00, P2: 0b0001_0000}, P3: 0}

	res, err := handleSelect(state, cmd, 0)
	require.NoError(t, err)
	assert.Equal(t, apdu.SW1CherP1P2Info, res.SW1)
	assert.EqualValues(t, 0x86, res.SW2)
}

func TestSelectDataAbsentSuppressesTemplate(t *testing.T) {
	state := newTestState(t)
	cmd := apdu.Cmd{Hdr: apdu.CmdHdr{CLA: apdu.ParseCLA(0x00), INS: 0xA4, P1: 0x00, P2: 0x0C}, P3: 2, Data: []byte{0x3F, 0x00}}

	res, err := handleSelect(state, cmd, 1)
	require.NoError(t, err)
	assert.Equal(t, apdu.SW1NormNone, res.SW1)
	assert.Empty(t, res.Data)
}
