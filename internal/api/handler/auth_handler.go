package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/metrics"
	"github.com/daybook/journal-api/internal/api/middleware"
	"github.com/daybook/journal-api/internal/core/ports"
	"github.com/daybook/journal-api/internal/core/token"
)

// AuthHandler handles registration, login and the authenticated
// dashboard probe.
type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    func() int // cookie Max-Age in seconds
}

func NewAuthHandler(authService ports.AuthService, codec *token.Codec) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenTTL:    func() int { return int(codec.TTL().Seconds()) },
	}
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", nil)
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

// Register creates a new user account and sends the browser to login.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true   "Username (unique)"
// @Param        password  formData  string  true   "Password"
// @Param        nickname  formData  string  false  "Display nickname"
// @Success      303
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Nickname); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/login")
}

// Login authenticates a user, sets the session cookie, and sends the
// browser to the main page.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Failure      401  {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tok, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   h.tokenTTL(),
		HttpOnly: true,
		// Secure is a deployment concern; the cookie contract does not
		// require it.
	})

	return c.Redirect(http.StatusSeeOther, "/")
}

// Dashboard greets the authenticated user. API-style route: failures
// surface as 401 from the auth gate, never a redirect.
//
// @Summary      Authenticated greeting
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c echo.Context) error {
	_, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Message:  "welcome",
		Username: username,
	})
}
