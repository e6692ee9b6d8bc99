package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"softskill-server/internal/apperr"
)

// httpError maps a service error onto the transport. Upstream degradation
// reaching this point means the primary artifact could not be processed.
func httpError(err error) *echo.HTTPError {
	var code int
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		code = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperr.ErrUpstream):
		code = http.StatusBadGateway
	default:
		code = http.StatusInternalServerError
	}
	return echo.NewHTTPError(code, err.Error())
}
