package resetpassword

import (
	"context"
	"errors"
	c "fintrack/internal/core/domain/common"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	"fintrack/internal/core/domain/notification"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/domain/user"
	"fintrack/internal/core/services"
	"time"
)

type Input struct {
	Token       passwordreset.Token
	NewPassword user.RawPassword
}

type Result struct {
	Email c.Email
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	store          passwordreset.TokenStore
	passwordHasher user.PasswordHasher
	notifier       notification.Notifier
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	store passwordreset.TokenStore,
	passwordHasher user.PasswordHasher,
	notifier notification.Notifier,
	now func() time.Time,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		store:          store,
		passwordHasher: passwordHasher,
		notifier:       notifier,
		now:            now,
	}
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

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", v.Email))
		return result, err
	}

	// From here on the token is spent whatever happens to the update.
	email, ok := s.store.Consume(ctx, input.Token)
	if !ok {
		s.log.Info(ctx, "Password reset token has already been consumed.", logging.Entry("email", v.Email))
		return result, passwordreset.ErrInvalidToken
	}

	u, err := s.userRepository.SetPassword(ctx, user.SetPasswordInput{
		Email:        email,
		PasswordHash: newPasswordHash,
		At:           s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user password, user does not exist.", logging.Entry("email", email))
		return result, passwordreset.ErrUserMissingAtCompletion
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("email", u.Email))
	s.notifyPasswordChanged(ctx, u)
	return Result{Email: u.Email}, nil
}

func (s *service) notifyPasswordChanged(ctx context.Context, u user.User) {
	err := s.notifier.Notify(ctx, notification.Notification{
		Recipient: u.Email,
		Kind:      notification.KindPasswordChanged,
		Message:   "Your password has been changed.",
		At:        s.now(),
	})
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not send password change notification.",
			logging.Entry("email", u.Email),
			logging.Entry("err", err),
		)
	}
}
