package domain

import "time"

// SessionTTL is the absolute lifetime of a login session. Activity does not
// extend it.
const SessionTTL = 24 * time.Hour

// Session binds an opaque identifier to an authenticated user.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its absolute lifetime at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
