package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/utils"
)

func (h *Handlers) RegisterUser(ctx *gin.Context) {
	var payload models.RegisterUserPayload

	if !h.bind(ctx, &payload) {
		return
	}

	email := utils.NormalizeEmail(payload.Email)

	_, err := h.store.Users.FindByEmail(ctx.Request.Context(), email)

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already registered."})
		return
	}

	if !errors.Is(err, store.ErrNotFound) {
		h.internalError(ctx, "users: check existing email", err)
		return
	}

	digest, err := h.hasher.Hash(payload.Password)

	if err != nil {
		h.internalError(ctx, "users: hash password", err)
		return
	}

	user := models.User{
		Email:    email,
		Name:     strings.TrimSpace(payload.Name),
		Password: digest,
	}

	if err := h.store.Users.Create(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already registered."})
			return
		}
		h.internalError(ctx, "users: create", err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

func (h *Handlers) UpdateUser(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	var payload models.UpdateUserPayload

	if !h.bind(ctx, &payload) {
		return
	}

	user, err := h.store.Users.FindByID(ctx.Request.Context(), userID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User with the given id not found."})
			return
		}
		h.internalError(ctx, "users: find", err)
		return
	}

	if payload.IsEmpty() {
		ctx.JSON(http.StatusOK, user)
		return
	}

	if payload.Name != "" {
		user.Name = strings.TrimSpace(payload.Name)
	}

	if payload.Email != "" {
		email := utils.NormalizeEmail(payload.Email)

		if email != user.Email {
			existing, err := h.store.Users.FindByEmail(ctx.Request.Context(), email)

			if err == nil && existing.ID != user.ID {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already registered."})
				return
			}
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				h.internalError(ctx, "users: check existing email", err)
				return
			}
		}

		user.Email = email
	}

	if payload.Password != "" {
		digest, err := h.hasher.Hash(payload.Password)

		if err != nil {
			h.internalError(ctx, "users: hash password", err)
			return
		}

		user.Password = digest
	}

	if err := h.store.Users.Update(ctx.Request.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already registered."})
		case errors.Is(err, store.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User with the given id not found."})
		default:
			h.internalError(ctx, "users: update", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}
