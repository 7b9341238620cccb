// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

type Session struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Role      string     `db:"role"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	UserAgent string     `db:"user_agent"`
	IPAddress string     `db:"ip_address"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *Session) IsActive() bool {
	return !s.IsExpired() && !s.IsRevoked()
}

func (s *Session) Revoke() {
	now := time.Now()
	s.RevokedAt = &now
}
