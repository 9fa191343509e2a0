package apdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeparseResNormal(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0xA4}}
	b, err := DeparseRes(cmd, Res{SW1: SW1NormNone, SW2: 0})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x90, 0x00}, b)
}

func TestDeparseResWithData(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0xB0}}
	b, err := DeparseRes(cmd, Res{SW1: SW1NormNone, SW2: 0, Data: []byte{0x01, 0x02}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x90, 0x00}, b)
}

func TestDeparseResRejectsNonZeroSW2WhenRequired(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0x00}}
	_, err := DeparseRes(cmd, Res{SW1: SW1NormNone, SW2: 1})
	assert.Error(t, err)
}

func TestDeparseResProcAckAll(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0xA4}}
	b, err := DeparseRes(cmd, Res{SW1: SW1ProcAckAll})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA4}, b)
}

func TestDeparseResProcAckOne(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0xA4}}
	b, err := DeparseRes(cmd, Res{SW1: SW1ProcAckOne})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA4 ^ 0xFF}, b)
}

func TestDeparseResProcNull(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0xA4}}
	b, err := DeparseRes(cmd, Res{SW1: SW1ProcNull})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60}, b)
}

func TestDeparseResProcNullRejectsData(t *testing.T) {
	cmd := Cmd{Hdr: CmdHdr{INS: 0xA4}}
	_, err := DeparseRes(cmd, Res{SW1: SW1ProcNull, Data: []byte{0x01}})
	assert.Error(t, err)
}
