package errors

import (
	"net/http"
	"runtime/debug"

	"character-forge/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler returns a middleware that maps errors attached to the gin
// context onto the JSON error body. Client errors answer with their own
// message; server errors answer with a generic message plus the underlying
// one, so upstream provider detail is never lost.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := FromError(c.Errors[0].Err)

		log := logger.FromContext(c)
		log.Error("request failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"status_code", appErr.StatusCode,
			"error_code", appErr.Code,
			"message", appErr.Message,
		)

		if appErr.StatusCode >= http.StatusInternalServerError {
			c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
				"message": "Server error",
				"error":   appErr.Message,
			})
			return
		}

		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
			"message": appErr.Message,
		})
	}
}

// RecoveryWithLogger returns a middleware that recovers from panics, logs
// the stack, and answers 500. A panicking request never takes the process
// down.
func RecoveryWithLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())

				log := logger.FromContext(c)
				log.Error("panic recovered",
					"error", r,
					"stack", stack,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Server error",
					"error":   "the server encountered an unexpected error",
				})
			}
		}()

		c.Next()
	}
}
