package apdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCmdHeaderOnly(t *testing.T) {
	cmd, err := ParseCmd([]byte{0x00, 0xA4, 0x04, 0x0C})
	require.NoError(t, err)
	assert.EqualValues(t, 0xA4, cmd.Hdr.INS)
	assert.Empty(t, cmd.Data)
}

func TestParseCmdWithData(t *testing.T) {
	cmd, err := ParseCmd([]byte{0x00, 0xA4, 0x04, 0x0C, 0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, cmd.Data)
}

func TestParseCmdTooShort(t *testing.T) {
	_, err := ParseCmd([]byte{0x00, 0xA4})
	assert.Error(t, err)
}

func TestParseCmdTooLong(t *testing.T) {
	_, err := ParseCmd(make([]byte, CmdHdrRawLen+DataMax+1))
	assert.Error(t, err)
}

func TestParseTPDUHdr(t *testing.T) {
	hdr, err := ParseTPDUHdr([]byte{0x00, 0xA4, 0x00, 0x04, 0x02})
	require.NoError(t, err)
	assert.EqualValues(t, 0xA4, hdr.INS)
	assert.EqualValues(t, 0x02, hdr.P3)

	cmd := hdr.Cmd([]byte{0x3F, 0x00})
	assert.True(t, cmd.HasP3)
	assert.EqualValues(t, 0x02, cmd.P3)
}

func TestParseTPDUHdrTooShort(t *testing.T) {
	_, err := ParseTPDUHdr([]byte{0x00, 0xA4})
	assert.Error(t, err)
}
