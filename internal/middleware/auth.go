package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ledgerkeep/core/internal/auth"
	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/tenant"
)

// BearerAuth verifies the Authorization header on every request behind
// it, resolves the token's tenant claim against tenant.Lookup so a
// token for a deleted tenant is rejected at the edge, attaches the
// resulting Principal to the request context, and refuses the request
// with EUNAUTHORIZED otherwise. Handlers read the tenant id through
// domain.RequirePrincipal rather than from a caller-supplied value, so
// this is the one place tenant identity enters the system.
func BearerAuth(issuer *auth.TokenIssuer, tenants tenant.Lookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			principal, err := issuer.Verify(token)
			if err != nil {
				return domain.Unauthorized("middleware.BearerAuth", "invalid or expired token")
			}

			ctx := c.Request().Context()
			if _, err := tenants.GetTenant(ctx, principal.TenantID); err != nil {
				return domain.Unauthorized("middleware.BearerAuth", "invalid or expired token")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.NewContextWithPrincipal(ctx, principal)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" {
		return "", domain.Unauthorized("middleware.BearerAuth", "missing Authorization header")
	}
	if !strings.HasPrefix(header, prefix) {
		return "", domain.Unauthorized("middleware.BearerAuth", "Authorization header must use Bearer scheme")
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", domain.Unauthorized("middleware.BearerAuth", "empty bearer token")
	}
	return token, nil
}
