package apdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRCEnqueueDequeue(t *testing.T) {
	var rc RC
	require.NoError(t, rc.Enqueue([]byte{1, 2, 3, 4}))
	assert.EqualValues(t, 4, rc.Remaining())

	got := rc.DequeueUpTo(2)
	assert.Equal(t, []byte{1, 2}, got)
	assert.EqualValues(t, 2, rc.Remaining())

	got = rc.DequeueUpTo(10)
	assert.Equal(t, []byte{3, 4}, got)
	assert.EqualValues(t, 0, rc.Remaining())
}

func TestRCEnqueueTooLargeLeavesBufferUnchanged(t *testing.T) {
	var rc RC
	require.NoError(t, rc.Enqueue(make([]byte, DataMax)))
	err := rc.Enqueue([]byte{1})
	assert.Error(t, err)
	assert.EqualValues(t, DataMax, rc.Remaining())
}

func TestRCResetClearsState(t *testing.T) {
	var rc RC
	require.NoError(t, rc.Enqueue([]byte{1, 2, 3}))
	rc.DequeueUpTo(1)
	rc.Reset()
	assert.EqualValues(t, 0, rc.Remaining())
}
