package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// APIResponse represents the standard response envelope. Error carries the
// wire code; Message is a human-readable hint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Message: "Resource created successfully",
	}
	if len(message) > 0 {
		response.Message = message[0]
	}
	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with an explicit code.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// ErrorResponseWithError renders err. AppErrors keep their code and status;
// anything else becomes SERVER_ERROR without exposing internals.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		logger.Error("unhandled error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err)
		ErrorResponse(c, http.StatusInternalServerError, errors.CodeServerError, "Internal server error occurred")
		return
	}

	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"code", appErr.Code,
			"error", appErr.Err)
	}

	ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
}
