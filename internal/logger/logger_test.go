package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/examprep/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{" error ", logger.ERROR},
		{"nonsense", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAreSortedAndQuoted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.DEBUG), logger.WithColors(false)).
		WithPrefix("simulation").
		WithFields(map[string]any{"session_id": "abc", "answered": 3}).
		WithError(errors.New("disk full"))

	log.Info("saved")

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	assert.Contains(t, line, "[simulation]")
	answered := strings.Index(line, "answered=3")
	errField := strings.Index(line, `error="disk full"`)
	session := strings.Index(line, "session_id=abc")
	assert.True(t, answered >= 0 && errField > answered && session > errField, "fields should be sorted: %s", line)
}

func TestLogger_ChildrenShareOutput(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	child := parent.WithField("k", "v")

	parent.Info("one")
	child.Info("two")

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithField("request_id", "r1")
	ctx := logger.NewContext(context.Background(), log)

	logger.FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=r1")

	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
