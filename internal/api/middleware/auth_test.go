package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/core/token"
)

func newGateCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func newGateContext(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAPI_MissingToken(t *testing.T) {
	c, _ := newGateContext("")

	err := RequireAPI(newGateCodec(t))(okHandler)(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "authentication required: token missing" {
		t.Fatalf("missing-token message should be distinct, got %v", he.Message)
	}
}

func TestRequireAPI_InvalidToken(t *testing.T) {
	c, _ := newGateContext("not-a-token")

	err := RequireAPI(newGateCodec(t))(okHandler)(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "authentication required: token invalid or expired" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestRequireAPI_ExpiredToken(t *testing.T) {
	// mint an authentic but expired token with the gate's key
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":      time.Now().Add(-time.Minute).Unix(),
		"uid":      "user123",
		"username": "alice",
	})
	raw, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, _ := newGateContext(raw)
	gateErr := RequireAPI(newGateCodec(t))(okHandler)(c)

	var he *echo.HTTPError
	if !errors.As(gateErr, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", gateErr)
	}
}

func TestRequireAPI_ValidTokenAttachesIdentity(t *testing.T) {
	codec := newGateCodec(t)
	raw, err := codec.Issue("user123", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	c, rec := newGateContext(raw)
	if err := RequireAPI(codec)(okHandler)(c); err != nil {
		t.Fatalf("gate rejected valid token: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("next handler did not run, status %d", rec.Code)
	}
	if got := c.Get(CtxUserID); got != "user123" {
		t.Fatalf("user id not attached: %v", got)
	}
	if got := c.Get(CtxUsername); got != "alice" {
		t.Fatalf("username not attached: %v", got)
	}
}

func TestRequirePage_MissingTokenRedirects(t *testing.T) {
	c, rec := newGateContext("")

	if err := RequirePage(newGateCodec(t), "/login")(okHandler)(c); err != nil {
		t.Fatalf("page gate should redirect, not error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequirePage_InvalidTokenRedirects(t *testing.T) {
	c, rec := newGateContext("garbage")

	if err := RequirePage(newGateCodec(t), "/login")(okHandler)(c); err != nil {
		t.Fatalf("page gate should redirect, not error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestRequirePage_ValidTokenPassesThrough(t *testing.T) {
	codec := newGateCodec(t)
	raw, err := codec.Issue("user123", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	c, rec := newGateContext(raw)
	if err := RequirePage(codec, "/login")(okHandler)(c); err != nil {
		t.Fatalf("gate rejected valid token: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("next handler did not run, status %d", rec.Code)
	}
}
