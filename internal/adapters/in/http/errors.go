package http

import (
	"errors"
	"net/http"

	"laundry/internal/adapters/in/http/auth"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorStatus maps the core error taxonomy onto HTTP status codes. Forbidden
// wins over validation errors joined with it.
func errorStatus(err error) int {
	var bad *badRequestError
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Unclassified errors are logged and hidden.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		s.logger.Error("request failed", "method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		msg = "internal error"
	case http.StatusUnauthorized:
		msg = "unauthorized"
	case http.StatusForbidden:
		msg = "forbidden"
	case http.StatusServiceUnavailable:
		s.logger.Warn("dependency unavailable", "path", ctx.Path(), "error", err)
		msg = "service temporarily unavailable"
	}
	return ctx.JSON(status, Error{Code: status, Message: msg})
}

// handleError renders errors returned past the handlers, such as echo's
// routing errors, binder failures of the generated wrappers and
// ValidateRequest rejections, with the same Error body as fail.
func (s *Server) handleError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		if he.Code >= http.StatusInternalServerError {
			s.logger.Error("request failed", "method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		}
		if writeErr := ctx.JSON(he.Code, Error{Code: he.Code, Message: msg}); writeErr != nil {
			s.logger.Warn("write error response", "error", writeErr)
		}
		return
	}

	if writeErr := s.fail(ctx, err); writeErr != nil {
		s.logger.Warn("write error response", "error", writeErr)
	}
}

// badRequestError reports a request the API could not decode.
type badRequestError struct {
	msg string
}

func newBadRequest(msg string) *badRequestError {
	return &badRequestError{msg: msg}
}

func (e *badRequestError) Error() string {
	return e.msg
}
