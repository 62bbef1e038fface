package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/types"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

func GetCurrentUserID(ctx *gin.Context) (string, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return "", ErrNotAuthenticated
	}

	userID, ok := value.(string)

	if !ok || userID == "" {
		return "", ErrNotAuthenticated
	}

	return userID, nil
}

func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
