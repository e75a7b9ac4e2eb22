package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/api/middleware"
	"github.com/linkboard/linkboard-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn    func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn       func(ctx context.Context, username, password string) (*domain.Session, *domain.User, error)
	logoutFn      func(ctx context.Context, sessionID string) error
	currentUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) Authenticate(ctx context.Context, sessionID string) (string, error) {
	return "", domain.ErrNotAuthenticated
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

type stubCookies struct {
	issued  *domain.Session
	cleared bool
}

func (s *stubCookies) Issue(c echo.Context, session *domain.Session) error {
	s.issued = session
	return nil
}

func (s *stubCookies) Clear(c echo.Context) { s.cleared = true }

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "u1", Username: username, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubCookies{}, newMetrics())

	c, rec := newRequest(e, http.MethodPost, "/api/register", `{"username":"alice","password":"secret"}`, "")
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked || len(resp) != 2 {
		t.Fatalf("response must only carry id and username: %+v", resp)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, &stubCookies{}, newMetrics())

	c, _ := newRequest(e, http.MethodPost, "/api/register", `{"username":"bob","password":"pw"}`, "")
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubCookies{}, newMetrics())

	for _, body := range []string{"not-json", `{"username":"bob"}`, `{"password":"pw"}`} {
		c, _ := newRequest(e, http.MethodPost, "/api/register", body, "")
		expectHTTPError(t, handler.Register(c), http.StatusBadRequest)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	session := &domain.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return session, &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}
	cookies := &stubCookies{}
	handler := NewAuthHandler(stub, cookies, newMetrics())

	c, rec := newRequest(e, http.MethodPost, "/api/login", `{"username":"alice","password":"secret"}`, "")
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cookies.issued != session {
		t.Fatalf("session cookie not issued")
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	cookies := &stubCookies{}
	handler := NewAuthHandler(stub, cookies, newMetrics())

	c, _ := newRequest(e, http.MethodPost, "/api/login", `{"username":"alice","password":"bad"}`, "")
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if cookies.issued != nil {
		t.Fatalf("no cookie must be issued on failure")
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubCookies{}, newMetrics())

	c, _ := newRequest(e, http.MethodPost, "/api/login", "{", "")
	expectHTTPError(t, handler.Login(c), http.StatusBadRequest)
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var dropped string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			dropped = sessionID
			return nil
		},
	}
	cookies := &stubCookies{}
	handler := NewAuthHandler(stub, cookies, newMetrics())

	c, rec := newRequest(e, http.MethodPost, "/api/logout", "", "u1")
	c.Set(middleware.ContextSessionID, "s1")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if dropped != "s1" {
		t.Fatalf("expected session s1 dropped, got %q", dropped)
	}
	if !cookies.cleared {
		t.Fatalf("cookie not cleared")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_Anonymous(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			if sessionID != "" {
				t.Fatalf("unexpected session %q", sessionID)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub, &stubCookies{}, newMetrics())

	c, rec := newRequest(e, http.MethodPost, "/api/logout", "", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		currentUserFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubCookies{}, newMetrics())

	c, rec := newRequest(e, http.MethodGet, "/api/me", "", "u1")
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newRequest(e, http.MethodGet, "/api/me", "", "")
	if err := handler.Me(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
