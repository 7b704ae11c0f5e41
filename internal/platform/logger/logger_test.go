package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"":        Info,
		"INFO":    Info,
		"warning": Warn,
		"error":   Error,
		"nope":    Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestLogger_JSON_IncludesFieldsAndApp(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, App: "doseup", Out: &buf})

	l.With(map[string]any{"parent_id": "p-1"}).Info("reminders synced", map[string]any{
		"scheduled": 3,
		"":          "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "reminders synced", entry["message"])
	assert.Equal(t, "doseup", entry["app"])
	assert.Equal(t, "p-1", entry["parent_id"])
	assert.EqualValues(t, 3, entry["scheduled"])
	assert.NotContains(t, entry, "")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatJSON, Out: &buf})

	l.Info("hidden", nil)
	l.Error("shown", map[string]any{"error": errors.New("boom")})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"error":"boom"`)
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, Out: &buf})

	l.Warn("slot failed", map[string]any{"dose_time": "08:00"})

	out := buf.String()
	assert.True(t, strings.Contains(out, "slot failed"), out)
	assert.Contains(t, out, "dose_time=08:00")
}
