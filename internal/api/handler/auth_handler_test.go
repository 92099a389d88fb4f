package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/middleware"
	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/token"
)

type stubAuthService struct {
	registered map[string]string // username -> password
	loginToken string
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{registered: make(map[string]string), loginToken: "tok-abc"}
}

func (s *stubAuthService) Register(_ context.Context, username, password, nickname string) (*domain.User, error) {
	if _, exists := s.registered[username]; exists {
		return nil, domain.ErrUserExists
	}
	s.registered[username] = password
	return &domain.User{ID: "id-" + username, Username: username, Nickname: nickname}, nil
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	pw, ok := s.registered[username]
	if !ok || pw != password {
		return "", nil, domain.ErrInvalidCredentials
	}
	return s.loginToken, &domain.User{ID: "id-" + username, Username: username}, nil
}

func newFormContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newHandlerCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestAuthHandler_Register_Redirects(t *testing.T) {
	svc := newStubAuthService()
	h := NewAuthHandler(svc, newHandlerCodec(t))

	c, rec := newFormContext(t, http.MethodPost, "/register", url.Values{
		"username": {"alice"},
		"password": {"pw1234"},
		"nickname": {"Alice"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if _, ok := svc.registered["alice"]; !ok {
		t.Fatalf("user not passed to service")
	}
}

func TestAuthHandler_Register_ValidationFails(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), newHandlerCodec(t))

	// username below the minimum length
	c, _ := newFormContext(t, http.MethodPost, "/register", url.Values{
		"username": {"ab"},
		"password": {"pw1234"},
	})

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := newStubAuthService()
	svc.registered["alice"] = "pw"
	h := NewAuthHandler(svc, newHandlerCodec(t))

	c, _ := newFormContext(t, http.MethodPost, "/register", url.Values{
		"username": {"alice"},
		"password": {"pw1234"},
	})

	// the domain error passes through for the error handler to map
	if err := h.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookieAndRedirects(t *testing.T) {
	svc := newStubAuthService()
	svc.registered["alice"] = "pw1234"
	h := NewAuthHandler(svc, newHandlerCodec(t))

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"username": {"alice"},
		"password": {"pw1234"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != "tok-abc" {
		t.Fatalf("cookie does not carry the issued token: %q", session.Value)
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if session.Path != "/" {
		t.Fatalf("session cookie path should be /, got %q", session.Path)
	}
	if session.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie Max-Age should match token lifetime, got %d", session.MaxAge)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := newStubAuthService()
	svc.registered["alice"] = "pw1234"
	h := NewAuthHandler(svc, newHandlerCodec(t))

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			t.Fatalf("no cookie may be set on a failed login")
		}
	}
}

func TestAuthHandler_Dashboard(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), newHandlerCodec(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "id-alice")
	c.Set(middleware.CtxUsername, "alice")

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"welcome"`) || !strings.Contains(body, `"alice"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthHandler_Dashboard_NoIdentity(t *testing.T) {
	h := NewAuthHandler(newStubAuthService(), newHandlerCodec(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Dashboard(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}
