package entity

import "time"

// AuthToken is the persisted credential issued after a successful login.
// Each user owns at most one token; Key is embedded in the bearer string.
type AuthToken struct {
	Key       string
	UserID    string
	CreatedAt time.Time
}

// Expired reports whether the token is older than ttl. A zero ttl never expires.
func (t *AuthToken) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.After(t.CreatedAt.Add(ttl))
}
