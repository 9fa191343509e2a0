package bertlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthShortForm(t *testing.T) {
	b, err := encodeLength(127)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x7F}, b)

	got, n, err := decodeLength(b)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, Length{Val: 127, Form: LenFormDefiniteShort}, got)
}

func TestLengthLongForm(t *testing.T) {
	b, err := encodeLength(300)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x82, 0x01, 0x2C}, b)

	got, n, err := decodeLength(b)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, Length{Val: 300, Form: LenFormDefiniteLong}, got)
}

func TestLengthLongFormBoundary(t *testing.T) {
	b, err := encodeLength(128)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x80}, b)
}

func TestDecodeLengthIndefiniteRejected(t *testing.T) {
	_, _, err := decodeLength([]byte{0x80})
	assert.Error(t, err)
}

func TestDecodeLengthRFURejected(t *testing.T) {
	_, _, err := decodeLength([]byte{0xFF})
	assert.Error(t, err)
}

func TestDecodeLengthTruncated(t *testing.T) {
	_, _, err := decodeLength([]byte{0x82, 0x01})
	assert.Error(t, err)
}
