package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/feed"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/printing"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/utils"
)

const announcementNotFound = "Announcement with the given id not found."

// listFilter reads the type and sorting query parameters. An unknown type is
// rejected, an unknown sorting falls back to the default order.
func listFilter(ctx *gin.Context) (store.AnnouncementFilter, bool) {
	filter := store.AnnouncementFilter{
		Sorting: store.ParseSorting(ctx.Query("sorting")),
	}

	if announcementType := strings.ToLower(strings.TrimSpace(ctx.Query("type"))); announcementType != "" {
		if !models.IsAnnouncementType(announcementType) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": `"type" must be one of [birth, death, wedding]`})
			return filter, false
		}
		filter.Type = announcementType
	}

	return filter, true
}

func (h *Handlers) ListAnnouncements(ctx *gin.Context) {
	filter, ok := listFilter(ctx)

	if !ok {
		return
	}

	announcements, err := h.store.Announcements.List(ctx.Request.Context(), filter)

	if err != nil {
		h.internalError(ctx, "announcements: list", err)
		return
	}

	ctx.JSON(http.StatusOK, announcements)
}

func (h *Handlers) ListOwnAnnouncements(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	filter, ok := listFilter(ctx)

	if !ok {
		return
	}

	filter.UserID = userID

	announcements, err := h.store.Announcements.List(ctx.Request.Context(), filter)

	if err != nil {
		h.internalError(ctx, "announcements: list own", err)
		return
	}

	ctx.JSON(http.StatusOK, announcements)
}

func (h *Handlers) findAnnouncement(ctx *gin.Context) (*models.Announcement, bool) {
	id, err := utils.GetObjectID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": announcementNotFound})
		return nil, false
	}

	announcement, err := h.store.Announcements.FindByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": announcementNotFound})
			return nil, false
		}
		h.internalError(ctx, "announcements: find", err)
		return nil, false
	}

	return announcement, true
}

func (h *Handlers) GetAnnouncement(ctx *gin.Context) {
	announcement, ok := h.findAnnouncement(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, announcement)
}

func (h *Handlers) PrintAnnouncement(ctx *gin.Context) {
	announcement, ok := h.findAnnouncement(ctx)

	if !ok {
		return
	}

	var cityName string
	if announcement.City != nil {
		city, err := h.store.Cities.FindByID(ctx.Request.Context(), *announcement.City)

		switch {
		case err == nil:
			cityName = city.Name
		case !errors.Is(err, store.ErrNotFound):
			h.internalError(ctx, "announcements: find city", err)
			return
		}
	}

	pdf, err := printing.RenderAnnouncement(announcement, cityName)

	if err != nil {
		h.internalError(ctx, "announcements: render pdf", err)
		return
	}

	ctx.Header("Content-Disposition", `inline; filename="announcement-`+announcement.ID+`.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handlers) CreateAnnouncement(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	var payload models.AnnouncementPayload

	if !h.bind(ctx, &payload) {
		return
	}

	announcement := payload.Build(userID)

	if err := h.store.Announcements.Create(ctx.Request.Context(), &announcement); err != nil {
		h.internalError(ctx, "announcements: create", err)
		return
	}

	h.broadcast(feed.Event{Type: feed.EventCreated, Announcement: &announcement})

	ctx.JSON(http.StatusCreated, announcement)
}

func (h *Handlers) UpdateAnnouncement(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	id, err := utils.GetObjectID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": announcementNotFound})
		return
	}

	var payload models.AnnouncementPayload

	if !h.bind(ctx, &payload) {
		return
	}

	announcement := payload.Build(userID)
	announcement.ID = id

	if err := h.store.Announcements.Replace(ctx.Request.Context(), &announcement); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": announcementNotFound})
			return
		}
		h.internalError(ctx, "announcements: replace", err)
		return
	}

	h.broadcast(feed.Event{Type: feed.EventUpdated, Announcement: &announcement})

	ctx.JSON(http.StatusOK, announcement)
}

func (h *Handlers) DeleteAnnouncement(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	id, err := utils.GetObjectID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": announcementNotFound})
		return
	}

	deleted, err := h.store.Announcements.Delete(ctx.Request.Context(), id, userID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": announcementNotFound})
			return
		}
		h.internalError(ctx, "announcements: delete", err)
		return
	}

	h.broadcast(feed.Event{Type: feed.EventDeleted, Announcement: deleted})

	ctx.JSON(http.StatusOK, deleted)
}

func (h *Handlers) AnnouncementFeed(ctx *gin.Context) {
	if h.hub == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed is not available"})
		return
	}

	h.hub.Serve(ctx.Writer, ctx.Request)
}
