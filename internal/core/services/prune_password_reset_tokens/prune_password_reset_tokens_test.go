package prunepasswordresettokens

import (
	"context"
	"fintrack/internal/core/domain/logging"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setup() (*passwordreset.FakeRepository, *logging.FakeLogger, *passwordreset.Store) {
	log := logging.NewFakeLogger()
	repository := passwordreset.NewFakeRepository()
	store := passwordreset.NewStore(
		log,
		repository,
		passwordreset.NewFakeTokenGenerator("token"),
		passwordreset.DefaultTTL,
		func() time.Time { return NOW },
	)
	return repository, log, store
}

func TestExpiredTokensPruned(t *testing.T) {
	repository, log, store := setup()
	repository.Tokens["expired-1"] = passwordreset.ResetToken{Token: "expired-1", ExpiresAt: NOW.Add(-time.Hour)}
	repository.Tokens["expired-2"] = passwordreset.ResetToken{Token: "expired-2", ExpiresAt: NOW.Add(-time.Second)}
	repository.Tokens["active"] = passwordreset.ResetToken{Token: "active", ExpiresAt: NOW.Add(time.Minute)}
	repository.Tokens["boundary"] = passwordreset.ResetToken{Token: "boundary", ExpiresAt: NOW}

	result, err := New(log, store).Run(context.Background(), Input{})

	require.NoError(t, err)
	require.Equal(t, int64(2), result.Deleted)
	require.Equal(t, 2, repository.Count())
	require.True(t, store.Verify(context.Background(), "active").Valid)
	require.True(t, store.Verify(context.Background(), "boundary").Valid)
}

func TestPruneError(t *testing.T) {
	repository, log, store := setup()
	repository.ReturnError = true

	_, err := New(log, store).Run(context.Background(), Input{})

	require.Error(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
