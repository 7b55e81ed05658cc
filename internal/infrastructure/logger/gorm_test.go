package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	t.Run("logs sql errors", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT * FROM events", 0
		}, errors.New("connection refused"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "SQL Error", entry.Message)
		assert.Equal(t, "SELECT * FROM events", entry.ContextMap()["sql"])
	})

	t.Run("suppresses record not found", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT * FROM events WHERE id = ?", 0
		}, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn)

		began := time.Now().Add(-time.Second)
		gl.Trace(context.Background(), began, func() (string, int64) {
			return "SELECT count(*) FROM events", 1
		}, nil)

		require.Equal(t, 1, logs.Len())
		assert.Contains(t, logs.All()[0].Message, "SLOW SQL")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, errors.New("ignored"))

		assert.Equal(t, 0, logs.Len())
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)
	escalated := gl.LogMode(gormlogger.Info)

	assert.NotSame(t, gl, escalated)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
