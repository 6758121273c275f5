package models

import (
	"time"

	"gorm.io/gorm"
)

// TokenPurpose scopes a token to a single flow.
type TokenPurpose string

const (
	TokenPurposeVerifyEmail   TokenPurpose = "verify-email"
	TokenPurposeResetPassword TokenPurpose = "reset-password"
)

// Token lifetimes per purpose.
const (
	VerifyEmailTokenTTL   = 24 * time.Hour
	ResetPasswordTokenTTL = time.Hour
)

// Token is a single-use secret bound to one user and one purpose.
// Only the sha256 of the secret is stored; the plaintext goes out by email
// and is never persisted.
type Token struct {
	gorm.Model
	UserID    uint         `gorm:"not null;index" json:"userId"`
	Purpose   TokenPurpose `gorm:"not null;index" json:"purpose"`
	TokenHash string       `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time    `gorm:"not null" json:"expiresAt"`
}

// Expired reports whether the token is past its expiry at instant now.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
