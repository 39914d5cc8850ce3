package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"warden/internal/shared/errors"
)

// RequiredParam returns a trimmed path parameter, or a MISSING_FIELDS error
// naming it.
func RequiredParam(c *gin.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", errors.NewValidationError(errors.CodeMissingFields, name+" is required")
	}
	return v, nil
}

// ParseUintParam parses a numeric path parameter such as an admin id.
func ParseUintParam(c *gin.Context, name string) (uint, error) {
	raw, err := RequiredParam(c, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError(errors.CodeMissingFields, "invalid "+name)
	}
	return uint(n), nil
}

// QueryInt reads an integer query parameter. Missing or malformed values
// yield def.
func QueryInt(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
