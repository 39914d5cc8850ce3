package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warden/internal/application/liveness"
	"warden/internal/application/serverlog"
	"warden/internal/interfaces/dto"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// ServerHandler serves the endpoints game-server agents poll and push to.
// None of them require a token; the license key in the path or body is the
// tenant.
type ServerHandler struct {
	tracker  LivenessTracker
	queue    CommandQueue
	logs     LogService
	settings SettingsService
	logger   logger.Interface
}

func NewServerHandler(
	tracker LivenessTracker,
	queue CommandQueue,
	logs LogService,
	settings SettingsService,
	logger logger.Interface,
) *ServerHandler {
	return &ServerHandler{
		tracker:  tracker,
		queue:    queue,
		logs:     logs,
		settings: settings,
		logger:   logger,
	}
}

func (h *ServerHandler) Heartbeat(c *gin.Context) {
	var req dto.HeartbeatRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status, err := h.tracker.Heartbeat(c.Request.Context(), liveness.HeartbeatCommand{
		LicenseKey:    req.LicenseKey,
		Players:       req.Players,
		Version:       req.Version,
		UptimeSeconds: req.Uptime,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", status)
}

func (h *ServerHandler) Players(c *gin.Context) {
	key, err := utils.RequiredParam(c, "license")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	players := h.tracker.Roster(key)
	utils.SuccessResponse(c, http.StatusOK, "", dto.PlayersResponse{Players: players, Count: len(players)})
}

func (h *ServerHandler) Status(c *gin.Context) {
	key, err := utils.RequiredParam(c, "license")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", h.tracker.Status(key))
}

// Actions hands the agent every queued command and empties the queue.
func (h *ServerHandler) Actions(c *gin.Context) {
	key, err := utils.RequiredParam(c, "license")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", h.queue.Drain(key))
}

func (h *ServerHandler) IngestLog(c *gin.Context) {
	var req dto.LogRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	event, err := h.logs.Ingest(c.Request.Context(), serverlog.IngestCommand{
		LicenseKey: req.LicenseKey,
		Level:      req.Level,
		Type:       req.Type,
		Title:      req.Title,
		Message:    req.Message,
		Meta:       req.Meta,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, event, "Log recorded")
}

func (h *ServerHandler) Logs(c *gin.Context) {
	key, err := utils.RequiredParam(c, "license")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	limit := utils.QueryInt(c, "limit", serverlog.DefaultReadLimit)
	events, err := h.logs.Read(c.Request.Context(), key, limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", events)
}

// Settings returns the detection settings document for the agent.
func (h *ServerHandler) Settings(c *gin.Context) {
	key, err := utils.RequiredParam(c, "license")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	doc, err := h.settings.Get(c.Request.Context(), key)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", doc)
}
