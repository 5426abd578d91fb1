package middleware

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-Id"

// RequestID propagates an incoming request id or mints one. The id is
// echoed back in the response header and attached to the gin context
// for the logger.
func RequestID() gin.HandlerFunc {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = fmt.Sprintf("req_%d_%05d", time.Now().UnixNano(), src.Intn(100000))
		}
		c.Set(RequestIDHeader, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}
