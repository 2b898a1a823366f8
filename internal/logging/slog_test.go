package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestNewJSON_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)

	log.Info(context.Background(), "starting server", "addr", ":8080")

	m := lastLine(t, &buf)
	assert.Equal(t, "starting server", m["msg"])
	assert.Equal(t, ":8080", m["addr"])
	assert.Equal(t, "INFO", m["level"])
}

func TestWith_AttachesPersistentFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf).With("component", "versioncheck")

	log.Error(context.Background(), "feed fetch failed", "software_id", "golang")

	m := lastLine(t, &buf)
	assert.Equal(t, "versioncheck", m["component"])
	assert.Equal(t, "golang", m["software_id"])
	assert.Equal(t, "ERROR", m["level"])
}

func TestDebugBelowDefaultLevelIsDropped(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf)

	log.Debug(context.Background(), "noise")

	assert.Empty(t, buf.String())
}
