package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"warden/internal/shared/constants"
)

// HeaderAuthToken is the header older dashboards send the token in.
const HeaderAuthToken = "X-Auth-Token"

// maxTokenPeek bounds how much of a JSON body is read looking for "token".
const maxTokenPeek = 1 << 20

// BearerToken extracts the caller's token from "Authorization: Bearer",
// falling back to X-Auth-Token. Returns "" when neither is present.
func BearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader(constants.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(c.GetHeader(HeaderAuthToken))
}

// RequestToken is BearerToken with one more fallback: a "token" field in a
// JSON request body. The body is restored so handlers can bind it again.
func RequestToken(c *gin.Context) string {
	if token := BearerToken(c); token != "" {
		return token
	}
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), constants.ContentTypeJSON) {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxTokenPeek))
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Token)
}
