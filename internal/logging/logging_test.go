// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/logicsim/internal/logging"
)

func TestParseLevel(t *testing.T) {
	td := []struct {
		in  string
		lvl slog.Level
		err bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, d := range td {
		lvl, err := logging.ParseLevel(d.in)
		if d.err {
			assert.Error(t, err, d.in)
			continue
		}
		require.NoError(t, err, d.in)
		assert.Equal(t, d.lvl, lvl, d.in)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewLogger("warn", "text", &buf)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "circuit", "top")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "circuit=top")

	buf.Reset()
	l, err = logging.NewLogger("debug", "json", &buf)
	require.NoError(t, err)
	l.Debug("pass done", "steps", 3)
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "pass done", rec["msg"])
	assert.Equal(t, 3.0, rec["steps"])

	_, err = logging.NewLogger("info", "xml", &buf)
	assert.Error(t, err)
	_, err = logging.NewLogger("loud", "text", &buf)
	assert.Error(t, err)
}
