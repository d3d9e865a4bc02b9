package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logLine struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.PrintInfo("server started", map[string]string{"addr": ":4000"})

	var line logLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line.Level)
	assert.Equal(t, "server started", line.Message)
	assert.Equal(t, ":4000", line.Properties["addr"])
	assert.Empty(t, line.Trace)
}

func TestLoggerWarning(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.PrintWarning("failed login attempt", map[string]string{"user": "alice"})

	var line logLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARNING", line.Level)
	assert.Equal(t, "alice", line.Properties["user"])
}

func TestLoggerErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.PrintError(errors.New("boom"), nil)

	var line logLine
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line.Level)
	assert.Equal(t, "boom", line.Message)
	assert.NotEmpty(t, line.Trace)
}

func TestLoggerMinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)

	l.PrintInfo("ignored", nil)
	l.PrintWarning("also ignored", nil)

	assert.Zero(t, buf.Len())
}
