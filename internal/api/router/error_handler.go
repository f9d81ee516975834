package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-faucet/internal/api/httperrors"
	"github/chapool/go-faucet/internal/faucet"
	"github/chapool/go-faucet/internal/util"
)

// errorHandler maps every error escaping a handler to a JSON body of the
// form {"error": "..."}. If the response has already been committed the
// error is only logged, never double-written.
func errorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		l := util.LogFromEchoContext(c)

		code := http.StatusInternalServerError
		message := httperrors.ErrInternalServerError.Message

		var httpErr *httperrors.HTTPError
		var validationErr *faucet.ValidationError
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = httpErr.Message
		case errors.As(err, &validationErr):
			code = http.StatusBadRequest
			message = validationErr.Error()
		case errors.As(err, &echoErr):
			code = echoErr.Code
			message = fmt.Sprintf("%v", echoErr.Message)
		default:
			if !hideInternalServerErrorDetails {
				message = err.Error()
			}
		}

		l.Error().
			Err(err).
			Int("status", code).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("Request error")

		if c.Response().Committed {
			l.Warn().Msg("Response already committed, error not written to client")
			return
		}

		if writeErr := c.JSON(code, map[string]string{"error": message}); writeErr != nil {
			l.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
