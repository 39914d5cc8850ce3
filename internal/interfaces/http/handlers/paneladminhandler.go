package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountapp "warden/internal/application/account"
	"warden/internal/interfaces/dto"
	"warden/internal/interfaces/http/middleware"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// PanelAdminHandler lets owners manage their delegated admins. Login is the
// only unguarded route.
type PanelAdminHandler struct {
	admins PanelAdminService
	logger logger.Interface
}

func NewPanelAdminHandler(admins PanelAdminService, logger logger.Interface) *PanelAdminHandler {
	return &PanelAdminHandler{
		admins: admins,
		logger: logger,
	}
}

func (h *PanelAdminHandler) Login(c *gin.Context) {
	var req dto.PanelAdminLoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.admins.Login(c.Request.Context(), req.LicenseKey, req.Username, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

func (h *PanelAdminHandler) List(c *gin.Context) {
	owner, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
		return
	}

	admins, err := h.admins.List(c.Request.Context(), owner)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPanelAdminResponses(admins))
}

func (h *PanelAdminHandler) Create(c *gin.Context) {
	owner, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
		return
	}

	var req dto.CreatePanelAdminRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	created, err := h.admins.Create(c.Request.Context(), owner, req.Username, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.CreatedPanelAdminResponse{
		PanelAdminResponse: *dto.ToPanelAdminResponse(created.Admin),
		Token:              created.Token,
	}, "Panel admin created")
}

func (h *PanelAdminHandler) Update(c *gin.Context) {
	owner, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
		return
	}

	adminID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdatePanelAdminRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	admin, err := h.admins.Update(c.Request.Context(), owner, adminID, accountapp.UpdateAdminCommand{
		Active:   req.Active,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Panel admin updated", dto.ToPanelAdminResponse(admin))
}

func (h *PanelAdminHandler) Delete(c *gin.Context) {
	owner, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
		return
	}

	adminID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.admins.Delete(c.Request.Context(), owner, adminID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Panel admin deleted", nil)
}
