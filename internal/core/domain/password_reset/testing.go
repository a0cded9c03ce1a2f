package passwordreset

import (
	"context"
	c "fintrack/internal/core/domain/common"
	"fmt"
	"sync"
	"time"
)

type FakeRepository struct {
	Tokens      map[Token]ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Tokens: make(map[Token]ResetToken)}
}

func (r *FakeRepository) Create(ctx context.Context, token ResetToken) error {
	if r.ReturnError {
		return fmt.Errorf("could not create password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tokens[token.Token]; ok {
		return ErrTokenAlreadyExists
	}
	r.Tokens[token.Token] = token
	return nil
}

func (r *FakeRepository) GetByToken(ctx context.Context, token Token) (ResetToken, error) {
	if r.ReturnError {
		return ResetToken{}, fmt.Errorf("could not get password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rt, ok := r.Tokens[token]
	if !ok {
		return rt, ErrTokenDoesNotExist
	}
	return rt, nil
}

func (r *FakeRepository) Take(ctx context.Context, token Token) (ResetToken, error) {
	if r.ReturnError {
		return ResetToken{}, fmt.Errorf("could not take password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rt, ok := r.Tokens[token]
	if !ok {
		return rt, ErrTokenDoesNotExist
	}
	delete(r.Tokens, token)
	return rt, nil
}

func (r *FakeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete expired password reset tokens")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var deleted int64
	for token, rt := range r.Tokens {
		if rt.IsExpired(before) {
			delete(r.Tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

func (r *FakeRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Tokens)
}

// FakeTokenGenerator returns the configured tokens in order
// and keeps returning the last one.
type FakeTokenGenerator struct {
	Tokens      []Token
	ReturnError bool
	ix          int
	lock        sync.Mutex
}

func NewFakeTokenGenerator(tokens ...string) *FakeTokenGenerator {
	g := &FakeTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, Token(t))
	}
	return g
}

func (g *FakeTokenGenerator) GenerateResetToken() (Token, error) {
	if g.ReturnError || len(g.Tokens) == 0 {
		return Token(""), fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	token := g.Tokens[g.ix]
	if g.ix < len(g.Tokens)-1 {
		g.ix++
	}
	return token, nil
}

type FakeLinkSender struct {
	Sent        []ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeLinkSender() *FakeLinkSender {
	return &FakeLinkSender{}
}

func (s *FakeLinkSender) SendResetLink(ctx context.Context, token ResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset link")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	return nil
}

func (s *FakeLinkSender) SentTo() []c.Email {
	s.lock.Lock()
	defer s.lock.Unlock()
	emails := make([]c.Email, 0, len(s.Sent))
	for _, t := range s.Sent {
		emails = append(emails, t.Email)
	}
	return emails
}
