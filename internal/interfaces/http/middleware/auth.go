package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warden/internal/infrastructure/auth"
	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// OperatorAuthMiddleware guards the operator console with JWTs issued by
// the console login.
type OperatorAuthMiddleware struct {
	jwtService *auth.JWTService
	role       string
	logger     logger.Interface
}

func NewOperatorAuthMiddleware(jwtService *auth.JWTService, role string, logger logger.Interface) *OperatorAuthMiddleware {
	return &OperatorAuthMiddleware{
		jwtService: jwtService,
		role:       role,
		logger:     logger,
	}
}

func (m *OperatorAuthMiddleware) RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.BearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify operator token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.Role != m.role {
			m.logger.Warnw("operator token carries wrong role", "role", claims.Role)
			utils.ErrorResponse(c, http.StatusForbidden, errors.CodeForbidden, "operator role required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOperator, claims.Subject)
		c.Set(constants.ContextKeyOperatorRole, claims.Role)

		c.Next()
	}
}
