package httperrors

import "fmt"

// HTTPError is an error that maps straight to a JSON error response body of
// the form {"error": "..."}.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError %d: %s", e.Code, e.Message)
}
