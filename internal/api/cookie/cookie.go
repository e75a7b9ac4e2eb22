// Package cookie carries the login session id between the browser and the
// server. The cookie value is the session id wrapped in an HS256 token so a
// tampered or foreign value is rejected before the session store is queried;
// the token carries no user data.
package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

const DefaultName = "sid"

var errNoSessionID = errors.New("cookie: token has no session id")

// Options configures a Manager.
type Options struct {
	Name     string
	Secret   string
	Secure   bool
	SameSite string // lax, strict or none
}

// Manager issues, reads and clears the session cookie.
type Manager struct {
	name     string
	secret   []byte
	secure   bool
	sameSite http.SameSite
	now      func() time.Time
}

func NewManager(opts Options) *Manager {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	sameSite := parseSameSite(opts.SameSite)
	return &Manager{
		name:     name,
		secret:   []byte(opts.Secret),
		secure:   opts.Secure || sameSite == http.SameSiteNoneMode,
		sameSite: sameSite,
		now:      time.Now,
	}
}

// Issue sets an HTTP-only cookie carrying the session id until the session's
// absolute expiry.
func (m *Manager) Issue(c echo.Context, s *domain.Session) error {
	value, err := m.sign(s)
	if err != nil {
		return err
	}
	maxAge := int(s.ExpiresAt.Sub(m.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetCookie(m.cookie(value, s.ExpiresAt, maxAge))
	return nil
}

// SessionID returns the session id from a valid, unexpired cookie.
func (m *Manager) SessionID(c echo.Context) (string, bool) {
	ck, err := c.Cookie(m.name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	id, err := m.parse(ck.Value)
	if err != nil {
		return "", false
	}
	return id, true
}

// Clear instructs the browser to drop the cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(m.cookie("", time.Unix(0, 0), -1))
}

func (m *Manager) sign(s *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		IssuedAt:  jwt.NewNumericDate(m.now()),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errNoSessionID
	}
	return claims.ID, nil
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
