package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/metrics"
	"github.com/daybook/journal-api/internal/core/token"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// Context keys the gate sets for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// RequireAPI guards API-style routes: any authentication failure is a
// 401, with the missing-token case distinguished from a bad token.
func RequireAPI(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := authenticate(c, codec)
			if err != nil {
				if errors.Is(err, errNoToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required: token missing")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required: token invalid or expired")
			}

			attach(c, identity)
			return next(c)
		}
	}
}

// RequirePage guards page-rendering routes: any authentication failure
// redirects the browser to the login entry point.
func RequirePage(codec *token.Codec, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := authenticate(c, codec)
			if err != nil {
				return c.Redirect(http.StatusFound, loginPath)
			}

			attach(c, identity)
			return next(c)
		}
	}
}

var errNoToken = errors.New("no token")

// authenticate reads the auth cookie and verifies it. Verification is
// pure and runs per request; nothing is cached.
func authenticate(c echo.Context, codec *token.Codec) (token.Identity, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
		return token.Identity{}, errNoToken
	}

	identity, err := codec.Verify(cookie.Value)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
		} else {
			metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		}
		return token.Identity{}, err
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return identity, nil
}

func attach(c echo.Context, identity token.Identity) {
	c.Set(CtxUserID, identity.UserID)
	c.Set(CtxUsername, identity.Username)
}
