package models

import "time"

// Session maps an opaque cookie token to a user id. Sessions live in the
// same in-memory store as the entities and are pruned once expired.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
