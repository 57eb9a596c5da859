package middleware

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "request_id"

// RequestID tags every request with an id for log correlation. An
// inbound X-Request-ID is trusted and passed through unchanged.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = newRequestID()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func newRequestID() string {
	ts := strconv.FormatInt(time.Now().UnixNano(), 36)
	suffix := strconv.FormatInt(int64(rand.Intn(1<<20)), 36)
	return "req-" + ts + "-" + suffix
}

// GetRequestID returns the request's id, or "" when untagged.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
