package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func TestNewGormLogger_Options(t *testing.T) {
	gl, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, gormlogger.Info, gl.level)
	assert.Equal(t, 500*time.Millisecond, gl.slow)
	assert.False(t, gl.skipNotFound)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	clone := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.level)
	cloned, ok := clone.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, cloned.level)
}

func TestGormLogger_LevelGating(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Silent)
	gl.Info(context.Background(), "suppressed")
	gl.Warn(context.Background(), "suppressed")
	gl.Error(context.Background(), "suppressed")
	assert.Empty(t, recorded.All())

	gl, recorded = newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)
	gl.Info(context.Background(), "migrating %s", "events")
	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "migrating events")
}

func TestGormLogger_Trace_Error(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO events", 0
	}, errors.New("duplicate key"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "query failed", logs[0].Message)
}

func TestGormLogger_Trace_RecordNotFoundIgnored(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM tenants WHERE id = ?", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.WarnLevel, gormlogger.Warn,
		WithSlowThreshold(time.Nanosecond))

	gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM orders", 10
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "slow query", logs[0].Message)
}

func TestGormLogger_Trace_NormalQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 5
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "query", logs[0].Message)
}

func TestGormLogger_Trace_Silent(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 5
	}, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_CarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	gl.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 5
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	found := false
	for _, field := range logs[0].Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "req-42", field.String)
		}
	}
	assert.True(t, found)
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
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
