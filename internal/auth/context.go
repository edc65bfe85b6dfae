package auth

import "github.com/labstack/echo/v4"

// ContextKey is where the authenticated claims are stored on the echo context.
const ContextKey = "user"

// FromContext returns the claims placed by the JWT middleware.
func FromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}
