package swiccerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Success, CodeOf(nil))
	assert.Equal(t, FsNotFound, CodeOf(New(FsNotFound)))
	assert.Equal(t, Error, CodeOf(errors.New("plain")))
}

func TestIs(t *testing.T) {
	err := Newf(BufferTooShort, "need %d more bytes", 4)
	assert.True(t, errors.Is(err, New(BufferTooShort)))
	assert.False(t, errors.Is(err, New(FsNotFound)))
}

func TestStringUnknown(t *testing.T) {
	assert.Contains(t, RetCode(999).String(), "Unknown")
}
