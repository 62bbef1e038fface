package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidings-dev/tidings/internal/types"
)

// RequestID reuses a well-formed incoming X-Request-ID or generates one, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(types.RequestIDHeader)

		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		ctx.Set(types.ContextRequestIDKey, requestID)
		ctx.Header(types.RequestIDHeader, requestID)
		ctx.Next()
	}
}
