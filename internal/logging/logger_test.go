package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tychoish/strq/assert"
	"github.com/tychoish/strq/assert/check"
)

func TestParseLevel(t *testing.T) {
	for name, expect := range map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	} {
		t.Run(name, func(t *testing.T) {
			lvl, err := ParseLevel(name)
			assert.NotError(t, err)
			check.Equal(t, lvl, expect)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	check.Substring(t, err.Error(), "unknown log level")
}

func TestNew(t *testing.T) {
	logger, err := New("debug")
	assert.NotError(t, err)
	check.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("error")
	assert.NotError(t, err)
	check.True(t, !logger.Core().Enabled(zapcore.WarnLevel))

	_, err = New("nope")
	check.Error(t, err)
}
