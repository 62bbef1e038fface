package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/auth"
	"github.com/tidings-dev/tidings/internal/types"
)

// AuthMiddleware admits requests carrying a valid session cookie and stores
// the token subject under types.ContextUserKey.
func AuthMiddleware(signer auth.Signer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(types.AuthCookieName)

		if err != nil || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		claims, err := signer.Verify(token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
			return
		}

		ctx.Set(types.ContextUserKey, claims.Subject)
		ctx.Next()
	}
}
