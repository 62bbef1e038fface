package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/store"
)

func (h *Handlers) ListCities(ctx *gin.Context) {
	cities, err := h.store.Cities.List(ctx.Request.Context(), store.ParseCitySorting(ctx.Query("sorting")))

	if err != nil {
		h.internalError(ctx, "cities: list", err)
		return
	}

	ctx.JSON(http.StatusOK, cities)
}
