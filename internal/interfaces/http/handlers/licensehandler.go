package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	licenseapp "warden/internal/application/license"
	"warden/internal/interfaces/dto"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// LicenseHandler serves the agent-facing verification endpoint.
type LicenseHandler struct {
	licenses LicenseService
	logger   logger.Interface
}

func NewLicenseHandler(licenses LicenseService, logger logger.Interface) *LicenseHandler {
	return &LicenseHandler{
		licenses: licenses,
		logger:   logger,
	}
}

// Verify answers with "valid" instead of "success". Unknown keys are 404,
// every other rejection is 403 with the reason as error code.
func (h *LicenseHandler) Verify(c *gin.Context) {
	var req dto.VerifyLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.VerifyLicenseResponse{
			Error:   errors.CodeMissingKey,
			Message: "invalid request body",
		})
		return
	}

	result, err := h.licenses.Verify(c.Request.Context(), req.LicenseKey, req.HWID)
	if err != nil {
		status, code, message := http.StatusInternalServerError, errors.CodeServerError, "Internal server error occurred"
		if appErr := errors.GetAppError(err); appErr != nil {
			status, code, message = appErr.Status, appErr.Code, appErr.Message
		}
		c.JSON(status, dto.VerifyLicenseResponse{Error: code, Message: message})
		return
	}

	if !result.Valid {
		status := http.StatusForbidden
		if result.Reason == licenseapp.ReasonNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.VerifyLicenseResponse{
			Error:  result.Reason,
			Reason: result.Reason,
		})
		return
	}

	c.JSON(http.StatusOK, dto.VerifyLicenseResponse{
		Valid:     true,
		Assertion: result.Assertion,
		Signature: result.Signature,
	})
}
