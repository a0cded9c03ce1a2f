package user

import (
	"context"
	c "fintrack/internal/core/domain/common"
	"time"
)

type SetPasswordInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	At           time.Time
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// SetPassword returns ErrUserDoesNotExist if there is no record for the email.
	SetPassword(ctx context.Context, input SetPasswordInput) (User, error)
}
