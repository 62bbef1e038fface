package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/auth"
	"github.com/tidings-dev/tidings/internal/config"
	"github.com/tidings-dev/tidings/internal/feed"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/utils"
	"github.com/tidings-dev/tidings/internal/validation"
	"github.com/tidings-dev/tidings/pkg/logger"
)

type Dependencies struct {
	Store  *store.Store
	Hasher auth.Hasher
	Signer auth.Signer
	Hub    *feed.Hub
	Config config.Config
	Log    logger.Logger
}

type Handlers struct {
	store  *store.Store
	hasher auth.Hasher
	signer auth.Signer
	hub    *feed.Hub
	cfg    config.Config
	log    logger.Logger
}

func New(deps Dependencies) *Handlers {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Handlers{
		store:  deps.Store,
		hasher: deps.Hasher,
		signer: deps.Signer,
		hub:    deps.Hub,
		cfg:    deps.Config,
		log:    log,
	}
}

// bind decodes the JSON body into payload and validates it. On failure the
// response is already written and false is returned.
func (h *Handlers) bind(ctx *gin.Context, payload any) bool {
	if err := ctx.ShouldBindJSON(payload); err != nil {
		if fieldErr := validation.FromDecodeError(err); fieldErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
			return false
		}
		h.log.ClientError("http: bad request body", err, "path", ctx.FullPath())
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}

	err := validation.Validate(payload)

	if err == nil {
		return true
	}

	var fieldErr *validation.Error
	if errors.As(err, &fieldErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message})
		return false
	}

	h.internalError(ctx, "validation: unexpected failure", err)
	return false
}

func (h *Handlers) internalError(ctx *gin.Context, message string, err error) {
	h.log.ServerError(message, err,
		"path", ctx.FullPath(),
		"request_id", utils.GetRequestID(ctx),
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (h *Handlers) broadcast(event feed.Event) {
	if h.hub != nil {
		h.hub.Broadcast(event)
	}
}
