package passwordreset

import (
	c "fintrack/internal/core/domain/common"
	"net/url"
	"time"
)

const (
	DefaultTTL     = 15 * time.Minute
	MaxTokenLength = 1024
)

// Token is an opaque random identifier handed to the client
// as the "token" query parameter.
type Token string

func (t Token) IsWellFormed() bool {
	return t != "" && len(t) <= MaxTokenLength
}

// ResetURL returns base with the token set as the "token" query parameter.
// Other query parameters of base are kept.
func (t Token) ResetURL(base url.URL) string {
	query := base.Query()
	query.Set("token", string(t))
	base.RawQuery = query.Encode()
	return base.String()
}

type ResetToken struct {
	Token     Token
	Email     c.Email
	ExpiresAt time.Time
}

// IsExpired reports whether the token validity window has passed.
// A token is still valid at exactly ExpiresAt.
func (t ResetToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

type TokenGenerator interface {
	GenerateResetToken() (Token, error)
}

type Reason string

const (
	ReasonInvalidToken Reason = "invalid token"
	ReasonExpiredToken Reason = "expired token"
)

type Verification struct {
	Valid     bool
	Reason    Reason
	Email     c.Email
	ExpiresAt time.Time
}

func Valid(t ResetToken) Verification {
	return Verification{Valid: true, Email: t.Email, ExpiresAt: t.ExpiresAt}
}

func Invalid() Verification {
	return Verification{Valid: false, Reason: ReasonInvalidToken}
}

func Expired() Verification {
	return Verification{Valid: false, Reason: ReasonExpiredToken}
}

// Err converts a failed verification to the matching sentinel error.
func (v Verification) Err() error {
	if v.Valid {
		return nil
	}
	if v.Reason == ReasonExpiredToken {
		return ErrExpiredToken
	}
	return ErrInvalidToken
}
