package verifypasswordresettoken

import (
	"context"
	c "fintrack/internal/core/domain/common"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/services"
	"time"
)

type Input struct {
	Token passwordreset.Token
}

type Result struct {
	Email     c.Email
	ExpiresAt time.Time
}

type service struct {
	log   logging.Logger
	store passwordreset.TokenStore
}

func New(log logging.Logger, store passwordreset.TokenStore) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{log: log, store: store}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Token == "" {
		return result, passwordreset.ErrMissingToken
	}

	v := s.store.Verify(ctx, input.Token)
	if !v.Valid {
		s.log.Info(ctx, "Password reset token rejected.", logging.Entry("reason", v.Reason))
		return result, v.Err()
	}
	return Result{Email: v.Email, ExpiresAt: v.ExpiresAt}, nil
}
