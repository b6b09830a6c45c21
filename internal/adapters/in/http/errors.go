package http

import (
	"errors"
	"log/slog"
	"net/http"

	"donation/internal/core/application/usecases/queries"
	"donation/internal/generated/servers"
	"donation/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// errorResponse maps domain and application errors to a status and body.
//
//	ObjectNotFound                    -> 404
//	Forbidden                         -> 403, reason
//	InvalidTransition                 -> 409, reason
//	Conflict                          -> 409, retryable
//	ValueIsInvalid/Required/OutOfRange -> 400
//	InvalidCredentials                -> 401
func errorResponse(err error) (int, servers.Error) {
	var (
		forbidden  *errs.ForbiddenError
		transition *errs.InvalidTransitionError
		validation validator.ValidationErrors
	)

	switch {
	case errors.Is(err, queries.ErrInvalidCredentials):
		return http.StatusUnauthorized, servers.Error{
			Code:    http.StatusUnauthorized,
			Message: "invalid email or password",
		}
	case errors.As(err, &forbidden):
		return http.StatusForbidden, servers.Error{
			Code:    http.StatusForbidden,
			Message: forbidden.Error(),
			Reason:  &forbidden.Reason,
		}
	case errors.As(err, &transition):
		return http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: transition.Error(),
			Reason:  &transition.Reason,
		}
	case errs.IsRetryable(err):
		retryable := true
		return http.StatusConflict, servers.Error{
			Code:      http.StatusConflict,
			Message:   "item was modified concurrently, retry the request",
			Retryable: &retryable,
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		}
	case errors.As(err, &validation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		}
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// ErrorHandler renders errors that escape handlers, such as routing misses or
// malformed path parameters, in the API's error shape.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logger.Error("Unhandled error", "path", c.Path(), "error", err)
			he = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}

		message, ok := he.Message.(string)
		if !ok {
			message = http.StatusText(he.Code)
		}

		body := servers.Error{Code: he.Code, Message: message}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			logger.Error("Failed to write error response", "error", err)
		}
	}
}
