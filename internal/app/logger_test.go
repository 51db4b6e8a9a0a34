package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)

	l.Infof("router", "selected color %d", 15)
	l.Errorf("export", "write failed: %s", "disk full")

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "component=router")
	assert.Contains(t, out, `msg="selected color 15"`)
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "component=export")
}
