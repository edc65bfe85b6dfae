package router

import (
	"github.com/labstack/echo/v4"

	"github.com/manibhaskar29/college-event-management-system/internal/auth"
	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
)

// RequireRole rejects callers whose token role differs from role. It must run
// after the JWT middleware.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	message := "Access denied"
	switch role {
	case model.RoleAdmin:
		message = "Admin access only"
	case model.RoleStudent:
		message = "Student access only"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.FromContext(c)
			if !ok {
				return httpError(apperrors.ErrInvalidToken)
			}
			if claims.Role != role {
				return httpError(apperrors.NewForbiddenError(message))
			}
			return next(c)
		}
	}
}

func httpError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
