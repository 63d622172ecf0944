package auth

import (
	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
)

// ClaimsContextKey is the echo context key under which RequireAuth stores
// the verified claims.
const ClaimsContextKey = "claims"

// RequireAuth is the single enforcement point for protected routes. It
// rejects the request with 401 when no valid bearer token is present and
// otherwise stores the verified claims on the context.
func RequireAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := jwtService.Authenticate(c.Request())
			if claims == nil {
				unauthorized := errors.NewUnauthorizedError("Authentication required")
				status, body := errors.MapErrorToResponse(unauthorized)
				return c.JSON(status, body)
			}
			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil when
// the route was not authenticated.
func ClaimsFromContext(c echo.Context) *Claims {
	claims, _ := c.Get(ClaimsContextKey).(*Claims)
	return claims
}
