package prunepasswordresettokens

import (
	"context"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/services"
)

type Input struct{}

type Result struct {
	Deleted int64
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
	deleted, err := s.store.Prune(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	s.log.Info(ctx, "Expired password reset tokens have been pruned.", logging.Entry("deleted", deleted))
	return Result{Deleted: deleted}, nil
}
