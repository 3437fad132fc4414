package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorLogger logs detailed error information and recovers from panics.
func ErrorLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				requestEvent(log.Error(), c, start).
					Str("type", "panic").
					Err(err).
					Bytes("stack", debug.Stack()).
					Msg("request_error")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					requestEvent(log.Error(), c, start).
						Str("type", "http_error").
						Msg("request_error")
				}
				return
			}

			for _, err := range c.Errors {
				ev := requestEvent(log.Error(), c, start).
					Str("type", fmt.Sprintf("%v", err.Type)).
					Err(err.Err)
				if err.Meta != nil {
					ev = ev.Interface("meta", err.Meta)
				}
				ev.Msg("request_error")
			}
		}()

		c.Next()
	}
}

// AccessLogger writes one debug line per request.
func AccessLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		requestEvent(log.Debug(), c, start).Msg("request")
	}
}

func requestEvent(ev *zerolog.Event, c *gin.Context, start time.Time) *zerolog.Event {
	return ev.
		Int("status", c.Writer.Status()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Str("client_ip", c.ClientIP()).
		Str("request_id", requestID(c)).
		Dur("latency", time.Since(start))
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
