package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/utils"
)

func (h *Handlers) ListOrganizations(ctx *gin.Context) {
	orgs, err := h.store.Organizations.List(ctx.Request.Context())

	if err != nil {
		h.internalError(ctx, "organizations: list", err)
		return
	}

	ctx.JSON(http.StatusOK, orgs)
}

func (h *Handlers) RegisterOrganization(ctx *gin.Context) {
	var payload models.OrganizationPayload

	if !h.bind(ctx, &payload) {
		return
	}

	payload.Email = utils.NormalizeEmail(payload.Email)

	_, err := h.store.Organizations.FindByEmail(ctx.Request.Context(), payload.Email)

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Organization already registered."})
		return
	}

	if !errors.Is(err, store.ErrNotFound) {
		h.internalError(ctx, "organizations: check existing email", err)
		return
	}

	digest, err := h.hasher.Hash(payload.Password)

	if err != nil {
		h.internalError(ctx, "organizations: hash password", err)
		return
	}

	org := payload.Build()
	org.Password = digest

	if err := h.store.Organizations.Create(ctx.Request.Context(), &org); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Organization already registered."})
			return
		}
		h.internalError(ctx, "organizations: create", err)
		return
	}

	ctx.JSON(http.StatusCreated, org)
}
