package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warden/internal/application/identity"
	"warden/internal/infrastructure/permission"
	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
	"warden/internal/shared/utils/logutil"
)

// ContextKeyLicenseKey is set once a dashboard token resolved to a tenant.
const ContextKeyLicenseKey = constants.ContextKeyLicenseKey

// IdentityMiddleware resolves dashboard tokens and checks the resolved
// role against the casbin policy.
type IdentityMiddleware struct {
	resolver *identity.Resolver
	enforcer *permission.Enforcer
	logger   logger.Interface
}

func NewIdentityMiddleware(resolver *identity.Resolver, enforcer *permission.Enforcer, logger logger.Interface) *IdentityMiddleware {
	return &IdentityMiddleware{
		resolver: resolver,
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission rejects unresolved tokens with 401 and roles the policy
// does not allow with 403. On success the identity is cached on the request
// context so services resolving the same token skip the store.
func (m *IdentityMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.RequestToken(c)

		ident, err := m.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if !ident.Resolved() {
			if token != "" {
				m.logger.Debugw("dashboard token did not resolve",
					"token_prefix", logutil.TruncateForLog(token, 6),
					"path", c.Request.URL.Path)
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.CodeUnauthorized, "invalid or missing token")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(ident.Role(), resource, action)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, errors.CodeServerError, "permission check failed")
			c.Abort()
			return
		}
		if !allowed {
			m.logger.Warnw("permission denied",
				"role", ident.Role(),
				"license_key", ident.LicenseKey,
				"resource", resource,
				"action", action)
			utils.ErrorResponse(c, http.StatusForbidden, errors.CodeForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), token, ident))
		c.Set(constants.ContextKeyIdentity, ident)
		c.Set(constants.ContextKeyLicenseKey, ident.LicenseKey)

		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequirePermission.
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	v, ok := c.Get(constants.ContextKeyIdentity)
	if !ok {
		return identity.Identity{}, false
	}
	ident, ok := v.(identity.Identity)
	return ident, ok
}
