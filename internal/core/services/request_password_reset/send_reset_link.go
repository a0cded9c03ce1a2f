package requestpasswordreset

import (
	"context"
	"errors"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/services"
)

type serviceWithLinkSending struct {
	log    logging.Logger
	sender passwordreset.LinkSender
	store  passwordreset.TokenStore
	inner  services.Service[Input, Result]
}

// NewWithLinkSending delivers the issued token. A token whose link
// could not be sent is consumed, nobody could ever use it.
func NewWithLinkSending(
	log logging.Logger,
	sender passwordreset.LinkSender,
	store passwordreset.TokenStore,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithLinkSending{
		log:    log,
		sender: sender,
		store:  store,
		inner:  inner,
	}
}

func (s *serviceWithLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending password reset link.", logging.Entry("err", err))
		return result, err
	}

	err = s.sender.SendResetLink(ctx, result.Token)
	if errors.Is(err, context.Canceled) {
		s.revoke(context.Background(), result.Token)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("email", result.Token.Email),
			logging.Entry("err", err),
		)
		s.revoke(ctx, result.Token)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset link has been sent to the user.",
		logging.Entry("email", result.Token.Email),
	)
	return result, nil
}

func (s *serviceWithLinkSending) revoke(ctx context.Context, token passwordreset.ResetToken) {
	if _, ok := s.store.Consume(ctx, token.Token); !ok {
		s.log.Warning(ctx, "Could not revoke undelivered password reset token.", logging.Entry("email", token.Email))
		return
	}
	s.log.Info(ctx, "Undelivered password reset token has been revoked.", logging.Entry("email", token.Email))
}
