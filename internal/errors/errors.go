package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("email and password does not match")
	// ErrInvalidToken is returned when a bearer token is missing, malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when the caller's role does not match the route.
	ErrForbidden = errors.New("forbidden")
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrAlreadyRegistered is returned for a second registration of the same pair.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrNotRegistered is returned when the caller holds no registration for the event.
	ErrNotRegistered = errors.New("not registered for this event")
	// ErrTooManyAttempts is returned while an email is locked out after failed logins.
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")
)

// ValidationError describes missing or malformed client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a client facing message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ForbiddenError carries a route specific reason for an ErrForbidden.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a ForbiddenError with a client facing message.
func NewForbiddenError(message string) error {
	return &ForbiddenError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// IsInternal reports whether the error maps to a 500.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown becomes a
// generic internal error so storage details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var forbiddenErr *ForbiddenError
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.As(err, &forbiddenErr):
		return NewHTTPError(http.StatusForbidden, forbiddenErr.Message, "FORBIDDEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Email and password does not match", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid or expired token", "INVALID_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Access denied", "FORBIDDEN")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, "Event not found", "EVENT_NOT_FOUND")
	case errors.Is(err, ErrNotRegistered):
		return NewHTTPError(http.StatusNotFound, "Not registered for this event", "REGISTRATION_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, "User already exists", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrAlreadyRegistered):
		return NewHTTPError(http.StatusConflict, "Already registered for this event", "ALREADY_REGISTERED")
	case errors.Is(err, ErrTooManyAttempts):
		return NewHTTPError(http.StatusTooManyRequests, "Too many failed login attempts, try again later", "TOO_MANY_ATTEMPTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
