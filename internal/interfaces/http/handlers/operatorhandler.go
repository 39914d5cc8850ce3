package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountapp "warden/internal/application/account"
	licenseapp "warden/internal/application/license"
	"warden/internal/interfaces/dto"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// OperatorHandler serves the operator console under /api/admin.
type OperatorHandler struct {
	operator  OperatorService
	licenses  LicenseService
	customers CustomerService
	logger    logger.Interface
}

func NewOperatorHandler(
	operator OperatorService,
	licenses LicenseService,
	customers CustomerService,
	logger logger.Interface,
) *OperatorHandler {
	return &OperatorHandler{
		operator:  operator,
		licenses:  licenses,
		customers: customers,
		logger:    logger,
	}
}

func (h *OperatorHandler) Login(c *gin.Context) {
	var req dto.OperatorLoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	session, err := h.operator.Login(c.Request.Context(), req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", session)
}

func (h *OperatorHandler) ListLicenses(c *gin.Context) {
	licenses, err := h.licenses.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToLicenseResponses(licenses))
}

func (h *OperatorHandler) IssueLicense(c *gin.Context) {
	var req dto.IssueLicenseRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	lic, err := h.licenses.Issue(c.Request.Context(), req.DaysValid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToLicenseResponse(lic), "License issued")
}

func (h *OperatorHandler) UpdateLicense(c *gin.Context) {
	key, err := utils.RequiredParam(c, "key")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateLicenseRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := licenseapp.UpdateCommand{Status: req.Status}
	if len(req.ExpiresAt) > 0 {
		if bytes.Equal(req.ExpiresAt, []byte("null")) {
			cmd.ClearExpiry = true
		} else {
			var expires time.Time
			if err := json.Unmarshal(req.ExpiresAt, &expires); err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, errors.CodeMissingFields, "expires_at must be an RFC 3339 timestamp or null")
				return
			}
			expires = expires.UTC()
			cmd.ExpiresAt = &expires
		}
	}

	lic, err := h.licenses.Update(c.Request.Context(), key, cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "License updated", dto.ToLicenseResponse(lic))
}

func (h *OperatorHandler) DeleteLicense(c *gin.Context) {
	key, err := utils.RequiredParam(c, "key")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.licenses.Delete(c.Request.Context(), key); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "License deleted", nil)
}

func (h *OperatorHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToCustomerResponses(customers))
}

func (h *OperatorHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), accountapp.CreateCustomerCommand{
		Email:      req.Email,
		Password:   req.Password,
		LicenseKey: req.LicenseKey,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToCustomerResponse(customer), "Customer created")
}
