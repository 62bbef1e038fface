package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/types"
	"github.com/tidings-dev/tidings/pkg/logger"
)

func Logger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		status := ctx.Writer.Status()
		attrs := []any{
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", ctx.ClientIP(),
			"request_id", ctx.GetString(types.ContextRequestIDKey),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http: request", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("http: request", attrs...)
		default:
			log.Info("http: request", attrs...)
		}
	}
}

// Recovery answers a panicking handler with a 500 and logs the panic value.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		log.ServerError("http: panic recovered", fmt.Errorf("%v", recovered),
			"path", ctx.Request.URL.Path,
			"request_id", ctx.GetString(types.ContextRequestIDKey),
		)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
