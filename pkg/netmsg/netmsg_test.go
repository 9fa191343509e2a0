package netmsg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := Msg{
		ContactState: 0x000003FF,
		ExpectedLen:  5,
		Ctrl:         CtrlNone,
		Data:         []byte{0x00, 0xA4, 0x00, 0x04, 0x02},
	}
	buf, err := Encode(m)
	require.NoError(t, err)

	got, err := Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, m.ContactState, got.ContactState)
	assert.Equal(t, m.ExpectedLen, got.ExpectedLen)
	assert.Equal(t, m.Ctrl, got.Ctrl)
	assert.Equal(t, m.Data, got.Data)
}

func TestEncodeHeaderCoversFixedFieldsPlusData(t *testing.T) {
	m := Msg{Data: []byte{0x01, 0x02, 0x03}}
	buf, err := Encode(m)
	require.NoError(t, err)
	require.Len(t, buf, HdrLen+fixedLen+3)

	size := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	assert.EqualValues(t, fixedLen+3, size)
}

func TestEncodeRejectsOversizedData(t *testing.T) {
	_, err := Encode(Msg{Data: make([]byte, DataMax+1)})
	assert.Error(t, err)
}

func TestDecodeRejectsOversizedLength(t *testing.T) {
	buf := make([]byte, HdrLen)
	buf[3] = 0xFF // a length byte alone already exceeds fixedLen+DataMax
	buf[2] = 0xFF
	_, err := Decode(bytes.NewReader(buf))
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x09} // claims a full header but no body follows
	_, err := Decode(bytes.NewReader(buf))
	assert.Error(t, err)
}

func TestDecodeRejectsLengthBelowFixedFields(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x03}
	_, err := Decode(bytes.NewReader(buf))
	assert.Error(t, err)
}
