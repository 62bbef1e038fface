package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid id")

// GetObjectID reads a 24-hex id path parameter.
func GetObjectID(ctx *gin.Context, name string) (string, error) {
	id := strings.TrimSpace(ctx.Param(name))

	if !primitive.IsValidObjectID(id) {
		return "", ErrInvalidID
	}

	return strings.ToLower(id), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
