package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
)

// MessageResponse is the body of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps err to its HTTP form. Internal failures are logged with
// their cause and answered with a generic body.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.IsInternal() {
		slog.Error("request failed",
			"method", c.Request().Method,
			"route", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate binds the request body into req and runs struct validation.
// requiredMessage is reported when a required field is missing.
func bindAndValidate(c echo.Context, req interface{}, requiredMessage string) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperrors.NewValidationError(validationMessage(err, requiredMessage))
	}
	return nil
}

func validationMessage(err error, requiredMessage string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return requiredMessage
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", strings.ToLower(fe.Field()), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return requiredMessage
	}
}

// eventIDParam parses the :id path parameter. Anything that is not a positive
// integer cannot name an event.
func eventIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrEventNotFound
	}
	return uint(id), nil
}
