package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedEngine(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	engine := gin.New()
	engine.Use(GinMiddleware(zap.New(core)))
	return engine, logs
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs a successful request at info", func(t *testing.T) {
		engine, logs := observedEngine(zapcore.InfoLevel)
		engine.GET("/api/v1/expenses", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?page=2", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)

		fields := entry.ContextMap()
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/api/v1/expenses", fields["path"])
		assert.Equal(t, "page=2", fields["query"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("client error logs at warn and server error at error", func(t *testing.T) {
		engine, logs := observedEngine(zapcore.InfoLevel)
		engine.POST("/imports/invoices/reconcile", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
		})
		engine.GET("/broken", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/imports/invoices/reconcile", nil))
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

		require.Equal(t, 2, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
	})

	t.Run("propagates the request id set upstream", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		engine := gin.New()
		engine.Use(func(c *gin.Context) {
			c.Set("request_id", "req-42")
			c.Next()
		})
		engine.Use(GinMiddleware(zap.New(core)))
		engine.GET("/suppliers", func(c *gin.Context) { c.Status(http.StatusOK) })

		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/suppliers", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-42", logs.All()[0].ContextMap()["request_id"])
	})
}

func TestFromGin(t *testing.T) {
	t.Run("returns the stored request logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		stored := zap.NewNop().Named("request")
		c.Set("logger", stored)
		assert.Same(t, stored, FromGin(c))
	})

	t.Run("falls back to a nop logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, FromGin(c))
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/panic", func(*gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic recovered", logs.All()[0].Message)
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["panic"])
}
