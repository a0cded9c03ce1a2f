package passwordreset

import (
	"context"
	"errors"
	c "fintrack/internal/core/domain/common"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	"time"
)

const maxGenerationAttempts = 3

type Store struct {
	log        logging.Logger
	repository Repository
	generator  TokenGenerator
	ttl        time.Duration
	now        func() time.Time
}

func NewStore(
	log logging.Logger,
	repository Repository,
	generator TokenGenerator,
	ttl time.Duration,
	now func() time.Time,
) *Store {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if generator == nil {
		panic(e.NewNilArgumentError("generator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		log:        log,
		repository: repository,
		generator:  generator,
		ttl:        ttl,
		now:        now,
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create issues a new token for the email. The caller must make sure
// the account exists.
func (s *Store) Create(ctx context.Context, email c.Email) (ResetToken, error) {
	for attempt := 1; ; attempt++ {
		token, err := s.generator.GenerateResetToken()
		if err != nil {
			return ResetToken{}, err
		}

		rt := ResetToken{Token: token, Email: email, ExpiresAt: s.now().Add(s.ttl)}
		err = s.repository.Create(ctx, rt)
		if errors.Is(err, ErrTokenAlreadyExists) && attempt < maxGenerationAttempts {
			s.log.Warning(
				ctx,
				"Generated password reset token already exists, retrying.",
				logging.Entry("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return ResetToken{}, err
		}
		return rt, nil
	}
}

// Verify never mutates the repository. Repository faults are reported
// as an invalid token.
func (s *Store) Verify(ctx context.Context, token Token) Verification {
	if !token.IsWellFormed() {
		return Invalid()
	}

	rt, err := s.repository.GetByToken(ctx, token)
	if errors.Is(err, ErrTokenDoesNotExist) {
		return Invalid()
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return Invalid()
	}

	if rt.IsExpired(s.now()) {
		return Expired()
	}
	return Valid(rt)
}

// Consume removes the token and returns the email it was issued for.
// Expiry is not checked here, callers verify first.
func (s *Store) Consume(ctx context.Context, token Token) (email c.Email, ok bool) {
	if !token.IsWellFormed() {
		return email, false
	}

	rt, err := s.repository.Take(ctx, token)
	if errors.Is(err, ErrTokenDoesNotExist) {
		return email, false
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return email, false
	}
	return rt.Email, true
}

func (s *Store) Prune(ctx context.Context) (int64, error) {
	return s.repository.DeleteExpired(ctx, s.now())
}
