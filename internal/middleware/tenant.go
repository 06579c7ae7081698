package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agenpets/scheduler-api/pkg/auth"
	"github.com/agenpets/scheduler-api/pkg/errors"
	"github.com/agenpets/scheduler-api/pkg/httputil"
)

const (
	HeaderTenantID = "X-Tenant-ID"

	ContextTenantID    = "tenant_id"
	ContextSubjectID   = "subject_id"
	ContextSubjectName = "subject_name"
)

// Tenant resolves the tenant every request is scoped to. With a verifier the
// tenant comes from the bearer token's tenant_id claim; without one it is
// read from the X-Tenant-ID header.
func Tenant(verifier auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tenantID string
		if verifier != nil {
			token, ok := bearerToken(c.GetHeader("Authorization"))
			if !ok {
				httputil.RespondWithError(c, errors.Unauthorized(nil))
				return
			}
			claims, err := verifier.ValidateToken(token)
			if err != nil {
				httputil.RespondWithError(c, errors.Unauthorized(err))
				return
			}
			tenantID = claims.TenantID
			c.Set(ContextSubjectID, claims.Subject)
			c.Set(ContextSubjectName, claims.Name)
		} else {
			tenantID = strings.TrimSpace(c.GetHeader(HeaderTenantID))
			if tenantID == "" {
				httputil.RespondWithError(c, errors.InvalidArgument(HeaderTenantID+" header is required", nil))
				return
			}
		}

		c.Set(ContextTenantID, tenantID)
		l := zerolog.Ctx(c.Request.Context()).With().Str("tenant_id", tenantID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
		c.Next()
	}
}

// TenantID returns the tenant resolved by Tenant.
func TenantID(c *gin.Context) string {
	return c.GetString(ContextTenantID)
}

// Subject returns the authenticated caller, empty when auth is disabled.
func Subject(c *gin.Context) (id, name string) {
	return c.GetString(ContextSubjectID), c.GetString(ContextSubjectName)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
