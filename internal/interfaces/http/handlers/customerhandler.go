package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warden/internal/interfaces/dto"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// CustomerHandler serves license owners: login, their dashboard overview
// and the license on/off switch.
type CustomerHandler struct {
	customers CustomerService
	licenses  LicenseService
	logger    logger.Interface
}

func NewCustomerHandler(customers CustomerService, licenses LicenseService, logger logger.Interface) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		licenses:  licenses,
		logger:    logger,
	}
}

func (h *CustomerHandler) Login(c *gin.Context) {
	var req dto.CustomerLoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

func (h *CustomerHandler) Dashboard(c *gin.Context) {
	d, err := h.customers.Dashboard(c.Request.Context(), utils.RequestToken(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.DashboardResponse{
		License:       dto.ToLicenseResponse(d.License),
		Status:        d.Status,
		ActiveBans:    d.ActiveBans,
		QueuedActions: d.QueuedActions,
		AgentOutdated: d.AgentOutdated,
	})
}

// Toggle sets the owner's license status. Any text is stored; only ACTIVE
// licenses verify.
func (h *CustomerHandler) Toggle(c *gin.Context) {
	token := utils.RequestToken(c)

	var req dto.SetStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	key, err := h.licenses.SetStatusViaOwnerToken(c.Request.Context(), token, req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "License status updated", gin.H{
		"license_key": key,
		"status":      req.Status,
	})
}
