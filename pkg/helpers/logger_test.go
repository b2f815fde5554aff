package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "todo-api", "production")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	buf.Reset()
	LogError(logger, "store unavailable", errors.New("dial tcp: refused"), logrus.Fields{"user_id": "u-1"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store unavailable", entry["msg"])
	assert.Equal(t, "dial tcp: refused", entry["error"])
	assert.Equal(t, "u-1", entry["user_id"])
}

func TestNewLoggerDevelopmentIsVerboseText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "todo-api", "development")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	buf.Reset()
	LogInfo(logger, "server starting", nil)
	assert.True(t, strings.Contains(buf.String(), "server starting"))
}

func TestLogHelpersTolerateNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"), nil)
		LogInfo(nil, "x", nil)
	})
}
