package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the acting username injected by the Auth middleware.
// Administration operations take their actor identity from here and nowhere
// else; an empty username means the middleware never ran on this route.
func ctxActor(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
