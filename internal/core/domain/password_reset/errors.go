package passwordreset

import "errors"

var (
	ErrUnknownAccount          = errors.New("unknown account")
	ErrMissingToken            = errors.New("missing token")
	ErrInvalidToken            = errors.New(string(ReasonInvalidToken))
	ErrExpiredToken            = errors.New(string(ReasonExpiredToken))
	ErrUserMissingAtCompletion = errors.New("user does not exist")
)

var (
	ErrTokenDoesNotExist  = errors.New("password reset token does not exist")
	ErrTokenAlreadyExists = errors.New("password reset token already exists")
)
