package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the auth gate and
// fast-fails before any service call: a missing user_id means the
// middleware did not run on this route, which is a wiring bug, not a
// client error worth a prettier message.
func ctxIdentity(c echo.Context) (userID, username string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}

	username, _ = c.Get(middleware.CtxUsername).(string)
	return userID, username, nil
}
