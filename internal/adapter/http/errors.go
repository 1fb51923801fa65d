package http

import (
	"errors"
	"log/slog"
	"net/http"

	"sesi-membership/internal/adapter/storage"
	"sesi-membership/internal/domain/application"
	"sesi-membership/internal/domain/member"
	"sesi-membership/internal/domain/region"
	"sesi-membership/internal/usecase/auth"
	"sesi-membership/internal/usecase/intake"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors to HTTP status codes; 0 means unknown.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrNotFound),
		errors.Is(err, member.ErrNotFound),
		errors.Is(err, region.ErrStateNotFound),
		errors.Is(err, region.ErrDistrictNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrMissingDocument),
		errors.Is(err, intake.ErrUnknownDocument),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrFileType):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, application.ErrDuplicateRegistration):
		return http.StatusConflict
	case errors.Is(err, application.ErrDistrictMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrInactive):
		return http.StatusForbidden
	}
	return 0
}

// writeError renders err as an ErrorResponse. Unknown errors are logged and
// reported as a generic 500.
func writeError(c echo.Context, err error) error {
	if code := statusFor(err); code != 0 {
		return c.JSON(code, ErrorResponse{Error: err.Error()})
	}
	slog.ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"err", err,
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
