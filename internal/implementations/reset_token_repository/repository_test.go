package resettokenrepository

import (
	"context"
	c "fintrack/internal/core/domain/common"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL = "user@example.com"
	TOKEN = "0123456789abcdef0123456789abcdef"
)

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type repositorySuite struct {
	suite.Suite
	newRepository func() passwordreset.Repository
	cleanUp       func()
	repository    passwordreset.Repository
}

func (s *repositorySuite) SetupTest() {
	s.repository = s.newRepository()
}

func (s *repositorySuite) TearDownTest() {
	if s.cleanUp != nil {
		s.cleanUp()
	}
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &repositorySuite{
		newRepository: func() passwordreset.Repository { return NewMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatal(err)
	}
	client := redis.NewClient(opt)
	defer client.Close()

	namespace := fmt.Sprintf("test-%d", time.Now().UnixNano())
	suite.Run(t, &repositorySuite{
		newRepository: func() passwordreset.Repository { return NewRedis(client, namespace) },
		cleanUp: func() {
			client.Del(context.Background(), namespace+keySuffix)
		},
	})
}

func (s *repositorySuite) TestCreateAndGet() {
	rt := s.token(TOKEN, NOW.Add(15*time.Minute))
	s.Require().NoError(s.repository.Create(context.Background(), rt))

	actual, err := s.repository.GetByToken(context.Background(), rt.Token)

	s.Require().NoError(err)
	s.Equal(rt.Token, actual.Token)
	s.Equal(rt.Email, actual.Email)
	s.True(rt.ExpiresAt.Equal(actual.ExpiresAt))
}

func (s *repositorySuite) TestCreateDuplicate() {
	rt := s.token(TOKEN, NOW)
	s.Require().NoError(s.repository.Create(context.Background(), rt))

	err := s.repository.Create(context.Background(), s.token(TOKEN, NOW.Add(time.Hour)))

	s.ErrorIs(err, passwordreset.ErrTokenAlreadyExists)
	actual, err := s.repository.GetByToken(context.Background(), rt.Token)
	s.Require().NoError(err)
	s.True(rt.ExpiresAt.Equal(actual.ExpiresAt))
}

func (s *repositorySuite) TestGetUnknown() {
	_, err := s.repository.GetByToken(context.Background(), "unknown")
	s.ErrorIs(err, passwordreset.ErrTokenDoesNotExist)
}

func (s *repositorySuite) TestTakeRemoves() {
	rt := s.token(TOKEN, NOW)
	s.Require().NoError(s.repository.Create(context.Background(), rt))

	taken, err := s.repository.Take(context.Background(), rt.Token)
	s.Require().NoError(err)
	s.Equal(c.Email(EMAIL), taken.Email)

	_, err = s.repository.Take(context.Background(), rt.Token)
	s.ErrorIs(err, passwordreset.ErrTokenDoesNotExist)
	_, err = s.repository.GetByToken(context.Background(), rt.Token)
	s.ErrorIs(err, passwordreset.ErrTokenDoesNotExist)
}

func (s *repositorySuite) TestConcurrentTake() {
	rt := s.token(TOKEN, NOW)
	s.Require().NoError(s.repository.Create(context.Background(), rt))

	const workers = 20
	var wg sync.WaitGroup
	var lock sync.Mutex
	taken := 0
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.repository.Take(context.Background(), rt.Token); err == nil {
				lock.Lock()
				taken++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, taken)
}

func (s *repositorySuite) TestDeleteExpired() {
	s.Require().NoError(s.repository.Create(context.Background(), s.token("expired", NOW.Add(-time.Minute))))
	s.Require().NoError(s.repository.Create(context.Background(), s.token("boundary", NOW)))
	s.Require().NoError(s.repository.Create(context.Background(), s.token("active", NOW.Add(time.Minute))))

	deleted, err := s.repository.DeleteExpired(context.Background(), NOW)

	s.Require().NoError(err)
	s.Equal(int64(1), deleted)
	_, err = s.repository.GetByToken(context.Background(), "expired")
	s.ErrorIs(err, passwordreset.ErrTokenDoesNotExist)
	_, err = s.repository.GetByToken(context.Background(), "boundary")
	s.NoError(err)
	_, err = s.repository.GetByToken(context.Background(), "active")
	s.NoError(err)
}

func (s *repositorySuite) TestDeleteExpiredEmpty() {
	deleted, err := s.repository.DeleteExpired(context.Background(), NOW)
	s.Require().NoError(err)
	s.Equal(int64(0), deleted)
}

func (s *repositorySuite) token(token string, expiresAt time.Time) passwordreset.ResetToken {
	return passwordreset.ResetToken{
		Token:     passwordreset.Token(token),
		Email:     c.Email(EMAIL),
		ExpiresAt: expiresAt,
	}
}

func TestRecordEncoding(t *testing.T) {
	rt := passwordreset.ResetToken{Token: TOKEN, Email: EMAIL, ExpiresAt: NOW.Add(15 * time.Minute)}

	data, err := encode(rt)
	if err != nil {
		t.Fatal(err)
	}
	expected := fmt.Sprintf(`{"token":"%s","email":"%s","expiresAt":%d}`, TOKEN, EMAIL, NOW.Add(15*time.Minute).UnixMilli())
	if string(data) != expected {
		t.Fatalf("unexpected encoding %s", data)
	}

	decoded, err := decode(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Token != rt.Token || decoded.Email != rt.Email || !decoded.ExpiresAt.Equal(rt.ExpiresAt) {
		t.Fatalf("decoded %v, expected %v", decoded, rt)
	}

	if _, err := decode("{not json"); err == nil {
		t.Fatal("error expected for malformed record")
	}
}
