package models

import "time"

// RefreshToken is one link in a user's rotation chain. Only the SHA-256 hash
// of the opaque token is stored; the plaintext leaves the server exactly once,
// in the login or refresh response. A rotated-out token keeps its row (revoked,
// pointing at its successor) until the nightly cleanup prunes it.
type RefreshToken struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"index;not null" json:"user_id"`
	TokenHash         string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt         time.Time  `gorm:"index;not null" json:"expires_at"`
	RevokedAt         *time.Time `gorm:"index" json:"revoked_at,omitempty"`
	ReplacedByTokenID *uint      `gorm:"index" json:"replaced_by_token_id,omitempty"`
	CreatedByIP       string     `gorm:"size:64" json:"created_by_ip,omitempty"`
	UserAgent         string     `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// Revoked reports whether the token has been rotated out or explicitly
// invalidated by logout.
func (t *RefreshToken) Revoked() bool { return t.RevokedAt != nil }

// Expired reports whether the token is past its lifetime at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool { return now.After(t.ExpiresAt) }
