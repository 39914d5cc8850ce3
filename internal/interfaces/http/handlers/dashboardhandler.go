package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"warden/internal/interfaces/dto"
	"warden/internal/interfaces/http/middleware"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// maxSettingsBody bounds a detection settings document.
const maxSettingsBody = 256 << 10

// DashboardHandler serves the owner and admin dashboard. Routes are guarded
// by the identity middleware, which caches the resolved identity on the
// request context.
type DashboardHandler struct {
	queue    CommandQueue
	settings SettingsService
	logger   logger.Interface
}

func NewDashboardHandler(queue CommandQueue, settings SettingsService, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		queue:    queue,
		settings: settings,
		logger:   logger,
	}
}

// Action queues a command for the caller's agent.
func (h *DashboardHandler) Action(c *gin.Context) {
	token := utils.RequestToken(c)

	var req dto.DashboardActionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if token == "" {
		token = req.Token
	}

	cmd, err := h.queue.Enqueue(c.Request.Context(), token, req.Type, req.Payload)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Action queued", cmd)
}

func (h *DashboardHandler) GetSettings(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
		return
	}

	doc, err := h.settings.Get(c.Request.Context(), ident.LicenseKey)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", doc)
}

// PutSettings replaces the document. The body is either the document itself
// or {"settings": {...}}.
func (h *DashboardHandler) PutSettings(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSettingsBody))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, errors.CodeMissingFields, "invalid request body")
		return
	}

	doc := json.RawMessage(raw)
	var wrapped struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Settings) > 0 {
		doc = wrapped.Settings
	}

	saved, err := h.settings.Put(c.Request.Context(), ident.LicenseKey, doc)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Settings updated", saved)
}
