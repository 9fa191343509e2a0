package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()
	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}
	return buf, cleanup
}

func TestLevelFiltering(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("WARN")
	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be filtered")
	assert.Contains(t, out, "should appear")
}

func TestSetFormatJSON(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("DEBUG")
	SetFormat("json")
	defer SetFormat("text")

	Info("hello", "ins", "0xA4")

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"hello"`))
	assert.True(t, strings.Contains(out, `"ins":"0xA4"`))
}

func TestContextFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()
	SetLevel("DEBUG")
	SetFormat("text")

	ctx := WithConn(context.Background(), &ConnContext{ConnID: "c-1", State: "CmdWait"})
	InfoCtx(ctx, "tick")

	out := buf.String()
	assert.Contains(t, out, "conn_id=c-1")
	assert.Contains(t, out, "state=CmdWait")
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	SetLevel("DEBUG")
	SetLevel("NOT_A_LEVEL")
	assert.Equal(t, LevelDebug, Level(currentLevel.Load()))
	SetLevel("INFO")
}
