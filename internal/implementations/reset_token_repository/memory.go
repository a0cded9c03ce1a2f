package resettokenrepository

import (
	"context"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"sync"
	"time"
)

// Memory keeps tokens in the process. Tokens do not survive a restart
// and are not shared between instances.
type Memory struct {
	tokens map[passwordreset.Token]passwordreset.ResetToken
	lock   sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{tokens: make(map[passwordreset.Token]passwordreset.ResetToken)}
}

func (m *Memory) Create(ctx context.Context, token passwordreset.ResetToken) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, ok := m.tokens[token.Token]; ok {
		return passwordreset.ErrTokenAlreadyExists
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *Memory) GetByToken(ctx context.Context, token passwordreset.Token) (passwordreset.ResetToken, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	rt, ok := m.tokens[token]
	if !ok {
		return rt, passwordreset.ErrTokenDoesNotExist
	}
	return rt, nil
}

func (m *Memory) Take(ctx context.Context, token passwordreset.Token) (passwordreset.ResetToken, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	rt, ok := m.tokens[token]
	if !ok {
		return rt, passwordreset.ErrTokenDoesNotExist
	}
	delete(m.tokens, token)
	return rt, nil
}

func (m *Memory) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	var deleted int64
	for token, rt := range m.tokens {
		if rt.IsExpired(before) {
			delete(m.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}
