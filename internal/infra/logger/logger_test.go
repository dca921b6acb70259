package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFieldsMergesBaseAndCallFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	log := FromLogrus(base).WithFields(logrus.Fields{"request_id": "r-1"})

	log.Warn("slow completion", logrus.Fields{"session_id": "s1"})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "slow completion", entry.Message)
	assert.Equal(t, "r-1", entry.Data["request_id"])
	assert.Equal(t, "s1", entry.Data["session_id"])
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	base, hook := test.NewNullLogger()
	parent := FromLogrus(base)
	_ = parent.WithFields(logrus.Fields{"request_id": "r-2"})

	parent.Info("hello")

	_, ok := hook.LastEntry().Data["request_id"]
	assert.False(t, ok)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	l := NewLogger(context.Background(), true, "not-a-level")
	assert.Equal(t, logrus.InfoLevel, l.logger.GetLevel())

	l = NewLogger(context.Background(), false, "debug")
	assert.Equal(t, logrus.DebugLevel, l.logger.GetLevel())
}
