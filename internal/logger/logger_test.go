package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/todo-api/internal/config"
)

func TestNewWithWriter_JSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.EnvProd, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("user_id", "u1").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "pid")
}

func TestNewWithWriter_DevLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.EnvDev, &buf)

	log.Debug().Msg("debug line")
	assert.Contains(t, buf.String(), "debug line")
}
