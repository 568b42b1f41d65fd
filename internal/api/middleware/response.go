package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON envelope for rejected requests.
type ErrorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// NewErrorBody fills the envelope for status on the current request path.
func NewErrorBody(c echo.Context, status int, message string) ErrorBody {
	return ErrorBody{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
		Path:    c.Request().URL.Path,
	}
}

// WriteError renders an ErrorBody. HEAD requests get headers only.
func WriteError(c echo.Context, status int, message string) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(status)
	}
	return c.JSON(status, NewErrorBody(c, status, message))
}
