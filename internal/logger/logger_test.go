package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"schoolplanner/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "prod")

	log.Info("lesson added", "lesson_id", 7)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "lesson added", record["msg"])
	assert.Equal(t, "schoolplanner", record["service"])
	assert.EqualValues(t, 7, record["lesson_id"])
}

func TestNew_LocalColorsErrors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "local")

	log.Debug("debug is enabled locally")
	log.Error("storage unavailable")

	out := buf.String()
	assert.Contains(t, out, "debug is enabled locally")
	assert.Contains(t, out, "storage unavailable")
	assert.Contains(t, out, "[31m")
}
