package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.ServerError("health: store ping", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"message":   "Store is not reachable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Tidings is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
