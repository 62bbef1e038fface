package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/types"
	"github.com/tidings-dev/tidings/internal/utils"
)

func (h *Handlers) setAuthCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.AuthCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cfg.Auth.CookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handlers) Login(ctx *gin.Context) {
	var credentials models.Credentials

	if !h.bind(ctx, &credentials) {
		return
	}

	user, err := h.store.Users.FindByEmail(ctx.Request.Context(), utils.NormalizeEmail(credentials.Email))

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		h.internalError(ctx, "auth: find user", err)
		return
	}

	if !h.hasher.Verify(credentials.Password, user.Password) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.signer.Sign(user.ID)

	if err != nil {
		h.internalError(ctx, "auth: sign token", err)
		return
	}

	h.setAuthCookie(ctx, token, int(h.cfg.Auth.TokenTTL.Seconds()))

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handlers) Verify(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	user, err := h.store.Users.FindByID(ctx.Request.Context(), userID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User does not exist."})
			return
		}
		h.internalError(ctx, "auth: find user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Token is valid.",
		"user":    user,
	})
}

func (h *Handlers) Logout(ctx *gin.Context) {
	h.setAuthCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
