package tp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatchesTableAtDefaultIdx(t *testing.T) {
	d := Default()
	assert.EqualValues(t, DefaultIdx, d.FiIdx)
	assert.EqualValues(t, DefaultIdx, d.DiIdx)
	assert.EqualValues(t, uint32(Fi[DefaultIdx])/(uint32(Di[DefaultIdx])*Fmax[DefaultIdx]), d.ETU)
}

func TestFromIndicesComputesETU(t *testing.T) {
	p := FromIndices(0b0100, 0b0011)
	assert.EqualValues(t, 1116, Fi[0b0100])
	assert.EqualValues(t, uint32(Fi[0b0100])/(uint32(Di[0b0011])*Fmax[0b0100]), p.ETU)
}

func TestFromIndicesRFUYieldsZeroETU(t *testing.T) {
	p := FromIndices(0b0111, 0)
	assert.EqualValues(t, 0, p.ETU)
}
