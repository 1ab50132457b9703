package probe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogLevelTogglesVerbosity(t *testing.T) {
	orig := level
	defer func() { level = orig }()

	var buf bytes.Buffer
	l := &logger{"", &buf, 3}

	SetLogLevel(levelNoPrint)
	l.debugf("hidden %d", 1)
	l.warnf("hidden %d", 2)
	l.errorf("hidden %d", 3)
	assert.Zero(t, buf.Len())

	SetLogLevel(levelDebug)
	l.debugf("shown %d", 4)
	assert.Contains(t, buf.String(), "Debug")
	assert.Contains(t, buf.String(), "shown 4")

	buf.Reset()
	SetLogLevel(levelWarn)
	l.infof("hidden %d", 5)
	l.warnf("shown %d", 6)
	out := buf.String()
	assert.NotContains(t, out, "hidden 5")
	assert.Contains(t, out, "shown 6")
}

func TestSetLogLevelRejectsOutOfRange(t *testing.T) {
	orig := level
	defer func() { level = orig }()

	SetLogLevel(levelDebug)
	SetLogLevel(levelNoPrint + 1)
	assert.Equal(t, levelDebug, level)
}
