package passwordreset

import (
	"context"
	c "fintrack/internal/core/domain/common"
	"time"
)

type Repository interface {
	// Create returns ErrTokenAlreadyExists if the token is already stored.
	Create(ctx context.Context, token ResetToken) error
	GetByToken(ctx context.Context, token Token) (ResetToken, error)
	// Take removes the token and returns it in one atomic step,
	// so only one of concurrent callers gets it.
	Take(ctx context.Context, token Token) (ResetToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (deleted int64, err error)
}

type LinkSender interface {
	SendResetLink(ctx context.Context, token ResetToken) error
}

type TokenStore interface {
	Create(ctx context.Context, email c.Email) (ResetToken, error)
	Verify(ctx context.Context, token Token) Verification
	Consume(ctx context.Context, token Token) (email c.Email, ok bool)
	Prune(ctx context.Context) (deleted int64, err error)
}
