package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsEngine(cfg CORSConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(CORSWithConfig(cfg))
	engine.GET("/suppliers", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.POST("/imports/invoices/reconcile", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func doCORS(engine *gin.Engine, method, path, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestCORSWithConfig(t *testing.T) {
	allowed := CORSConfig{
		AllowOrigins:     []string{"https://books.example.com"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}

	t.Run("allowed origin gets the policy headers", func(t *testing.T) {
		w := doCORS(corsEngine(allowed), http.MethodGet, "/suppliers", "https://books.example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://books.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, RequestIDHeader, w.Header().Get("Access-Control-Expose-Headers"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("unlisted origin gets no policy headers", func(t *testing.T) {
		w := doCORS(corsEngine(allowed), http.MethodGet, "/suppliers", "https://elsewhere.example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist allows nothing", func(t *testing.T) {
		w := doCORS(corsEngine(CORSConfig{}), http.MethodGet, "/suppliers", "https://books.example.com")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answers 204 with headers for an allowed origin", func(t *testing.T) {
		w := doCORS(corsEngine(allowed), http.MethodOptions, "/imports/invoices/reconcile", "https://books.example.com")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://books.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("preflight answers 204 without headers for a denied origin", func(t *testing.T) {
		w := doCORS(corsEngine(allowed), http.MethodOptions, "/imports/invoices/reconcile", "https://elsewhere.example.com")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := allowed
		cfg.AllowOrigins = []string{"*"}
		w := doCORS(corsEngine(cfg), http.MethodGet, "/suppliers", "https://anywhere.example.com")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
