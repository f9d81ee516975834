package httperrors

import "net/http"

var (
	ErrBadRequestBody      = NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "Too many requests. Try again later.")
	ErrInternalDispatch    = NewHTTPError(http.StatusInternalServerError, "Failed to dispatch transaction.")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "Internal server error.")
)
