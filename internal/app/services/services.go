package services

import (
	"fintrack/internal/app/deps"
	drl "fintrack/internal/core/domain/rate_limiter"
	"fintrack/internal/core/services"
	prunepasswordresettokens "fintrack/internal/core/services/prune_password_reset_tokens"
	ratelimiting "fintrack/internal/core/services/rate_limiting"
	requestpasswordreset "fintrack/internal/core/services/request_password_reset"
	resetpassword "fintrack/internal/core/services/reset_password"
	verifypasswordresettoken "fintrack/internal/core/services/verify_password_reset_token"
)

type Services struct {
	RequestPasswordReset     services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	VerifyPasswordResetToken services.Service[verifypasswordresettoken.Input, verifypasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]
	PrunePasswordResetTokens services.Service[prunepasswordresettokens.Input, prunepasswordresettokens.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	var requestPasswordReset services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	requestPasswordReset = requestpasswordreset.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenStore,
	)
	if deps.PasswordResetLinkSender != nil {
		requestPasswordReset = requestpasswordreset.NewWithLinkSending(
			deps.Logger,
			deps.PasswordResetLinkSender,
			deps.PasswordResetTokenStore,
			requestPasswordReset,
		)
	}
	s.RequestPasswordReset = ratelimiting.New(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestPasswordReset,
	)
	s.VerifyPasswordResetToken = verifypasswordresettoken.New(
		deps.Logger,
		deps.PasswordResetTokenStore,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenStore,
		deps.PasswordHasher,
		deps.Notifier,
		deps.Now,
	)
	s.PrunePasswordResetTokens = prunepasswordresettokens.New(
		deps.Logger,
		deps.PasswordResetTokenStore,
	)

	return s
}
