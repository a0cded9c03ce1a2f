package requestpasswordreset

import (
	"context"
	"errors"
	c "fintrack/internal/core/domain/common"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/domain/user"
	"fintrack/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "request_password_reset::" + string(i.Email)
}

type Result struct {
	Token passwordreset.ResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	store          passwordreset.TokenStore
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	store passwordreset.TokenStore,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		store:          store,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown account.", logging.Entry("email", input.Email))
		return result, passwordreset.ErrUnknownAccount
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.store.Create(ctx, u.Email)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create password reset token.",
			logging.Entry("email", u.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("email", u.Email),
		logging.Entry("expiresAt", token.ExpiresAt),
	)
	return Result{Token: token}, nil
}
