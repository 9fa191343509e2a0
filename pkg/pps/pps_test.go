package pps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

func TestNegotiateAcceptDefaultsNoProposal(t *testing.T) {
	req := []byte{0xFF, 0x00, 0xFF}
	params, resp, err := Negotiate(req)
	require.NoError(t, err)
	assert.EqualValues(t, 0, params.T)
	assert.Equal(t, req, resp)
}

func TestNegotiateStripsPPS1WhenProposalIsDefault(t *testing.T) {
	pps0 := byte(0b0001_0010) // T=2, PPS1 present
	pps1 := byte(0x11)        // Fi=1, Di=1 (defaults)
	req := []byte{PPSS, pps0, pps1}
	req = append(req, checksum(req))

	params, resp, err := Negotiate(req)
	require.NoError(t, err)
	assert.EqualValues(t, 1, params.FiIdx)
	assert.EqualValues(t, 1, params.DiIdx)
	// PPS1 stripped from the echoed response, so the response is shorter
	// than the request and PPS0's presence bit is cleared.
	assert.Len(t, resp, 3)
	assert.EqualValues(t, 0, resp[1]&pps0MaskPPS1)
}

func TestNegotiateEchoesNonDefaultProposal(t *testing.T) {
	pps0 := byte(0b0001_0001) // T=1, PPS1 present
	pps1 := byte(0x43)        // Fi=4, Di=3, non-default
	req := []byte{PPSS, pps0, pps1}
	req = append(req, checksum(req))

	params, resp, err := Negotiate(req)
	require.NoError(t, err)
	assert.EqualValues(t, 4, params.FiIdx)
	assert.EqualValues(t, 3, params.DiIdx)
	assert.Equal(t, req, resp)
}

func TestNegotiateBadChecksumInvalid(t *testing.T) {
	req := []byte{PPSS, 0x00, 0x00}
	_, _, err := Negotiate(req)
	assert.Equal(t, swiccerr.PpsInvalid, swiccerr.CodeOf(err))
}

func TestNegotiateMissingPPSSInvalid(t *testing.T) {
	req := []byte{0x00, 0x00, 0x00}
	_, _, err := Negotiate(req)
	assert.Equal(t, swiccerr.PpsInvalid, swiccerr.CodeOf(err))
}

func TestNegotiateRFUBitInvalid(t *testing.T) {
	req := []byte{PPSS, 0b1000_0000}
	req = append(req, checksum(req))
	_, _, err := Negotiate(req)
	assert.Equal(t, swiccerr.PpsInvalid, swiccerr.CodeOf(err))
}

func TestNegotiateTruncatedPPS1Invalid(t *testing.T) {
	req := []byte{PPSS, 0b0001_0000} // PPS1 announced but buffer ends here
	_, _, err := Negotiate(req)
	assert.Equal(t, swiccerr.PpsInvalid, swiccerr.CodeOf(err))
}

func TestNegotiatePPS3NonZeroInvalid(t *testing.T) {
	pps0 := byte(0b0100_0000) // PPS3 present
	req := []byte{PPSS, pps0, 0x01}
	req = append(req, checksum(req))
	_, _, err := Negotiate(req)
	assert.Equal(t, swiccerr.PpsInvalid, swiccerr.CodeOf(err))
}

func TestLenComputesExpectedLength(t *testing.T) {
	n, err := Len([]byte{PPSS, 0b0111_0000})
	require.NoError(t, err)
	assert.Equal(t, 6, n) // PPSS, PPS0, PPS1, PPS2, PPS3, PCK

	n, err = Len([]byte{PPSS, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLenRejectsMissingPPSS(t *testing.T) {
	_, err := Len([]byte{0x00, 0x00})
	assert.Equal(t, swiccerr.PpsInvalid, swiccerr.CodeOf(err))
}
