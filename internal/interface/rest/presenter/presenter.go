package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

type failResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Error returns a bare {"error": ...} body.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

// Fail returns the {"success": false, "error": ...} envelope used by the
// leaderboard surface.
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, failResponse{Success: false, Error: msg})
}

func MethodNotAllowed(c echo.Context) error {
	return Error(c, http.StatusMethodNotAllowed, "Method not allowed")
}

func Unauthorized(c echo.Context) error {
	return Error(c, http.StatusUnauthorized, "Unauthorized")
}
