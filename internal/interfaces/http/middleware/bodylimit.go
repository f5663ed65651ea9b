package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var tooLargeBody = gin.H{
	"success": false,
	"error": gin.H{
		"code":    "REQUEST_TOO_LARGE",
		"message": "Request body exceeds maximum allowed size",
	},
}

// BodyLimit caps the request body size. Import batches are already bounded by
// the max record count; this guards against a runaway payload before any JSON
// decoding starts. A larger declared Content-Length is rejected up front,
// chunked bodies are cut off by the limited reader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, tooLargeBody)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
