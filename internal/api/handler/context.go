package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the user id injected by the Auth middleware. Its
// presence proves the middleware ran; an empty value on a protected route
// means the token was structurally valid but carried no identity — reject.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxOptionalUserID returns the user id when OptionalAuth resolved one, or
// an empty string for anonymous callers.
func ctxOptionalUserID(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}
