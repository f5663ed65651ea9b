package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	query := func() (string, int64) {
		return `SELECT * FROM "expenses" WHERE invoice_number = $1`, 1
	}

	t.Run("query error logs at error with the sql", func(t *testing.T) {
		gl, logs := observedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), query, assert.AnError)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Contains(t, entry.ContextMap()["sql"], "invoice_number")
	})

	t.Run("record not found is skipped by default", func(t *testing.T) {
		gl, logs := observedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Zero(t, logs.Len())
	})

	t.Run("record not found logs when opted in", func(t *testing.T) {
		gl, logs := observedGormLogger(gormlogger.Error, WithRecordNotFound())
		gl.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		gl, logs := observedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(ctx, time.Now().Add(-time.Millisecond), query, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := observedGormLogger(gormlogger.Silent)
		gl.Trace(ctx, time.Now(), query, assert.AnError)
		assert.Zero(t, logs.Len())
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Silent)

	// LogMode returns an adjusted copy without touching the receiver
	raised := gl.LogMode(gormlogger.Info)
	raised.Info(context.Background(), "migrating %s", "payments")
	assert.Equal(t, 1, logs.Len())

	gl.Info(context.Background(), "still silent")
	assert.Equal(t, 1, logs.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGormLogLevel(tt.input))
		})
	}
}
