package csrf_test

import (
	"context"
	"testing"
	"time"

	"github.com/seedvault/seedvault/csrf"
	"github.com/seedvault/seedvault/csrf/repofake"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/stretchr/testify/require"
)

const (
	testSessionID  = "session-1"
	otherSessionID = "session-2"
	tokenExpiry    = 24 * time.Hour
)

type testFixture struct {
	repo    *repofake.FakeTokenRepo
	manager *csrf.Manager
	now     time.Time
}

func setupTestFixture(t *testing.T, sweepProbability float64) *testFixture {
	t.Helper()

	f := &testFixture{
		repo: repofake.NewFakeTokenRepo(),
		now:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.manager = csrf.NewManager(f.repo, tokenExpiry, sweepProbability, csrf.WithNowTime(func() time.Time {
		return f.now
	}))
	return f
}

func TestManager_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a token bound to the session", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		token, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)
		require.NotEmpty(t, token.Token)
		require.GreaterOrEqual(t, len(token.Token), 43) // 32 bytes base64url
		require.Equal(t, testSessionID, token.SessionID)
		require.Equal(t, f.now.Add(tokenExpiry), token.ExpiresAt)
	})

	t.Run("reuses the unexpired token", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		first, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)

		second, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)
		require.Equal(t, first.Token, second.Token)
		require.Equal(t, 1, f.repo.Count())
	})

	t.Run("mints a fresh token once the old one expires", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		first, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)

		f.now = f.now.Add(tokenExpiry + time.Minute)
		second, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)
	})

	t.Run("different sessions get different tokens", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		first, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)
		second, err := f.manager.Issue(ctx, otherSessionID)
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)
	})

	t.Run("requires a session id", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		_, err := f.manager.Issue(ctx, "")
		require.Error(t, err)
		require.ErrorIs(t, err, errors.ErrValidationFailed)
	})

	t.Run("sweep removes expired tokens from every session", func(t *testing.T) {
		f := setupTestFixture(t, 1) // sweep on every call

		_, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)
		_, err = f.manager.Issue(ctx, otherSessionID)
		require.NoError(t, err)
		require.Equal(t, 2, f.repo.Count())

		f.now = f.now.Add(tokenExpiry + time.Minute)
		_, err = f.manager.Issue(ctx, "session-3")
		require.NoError(t, err)
		require.Equal(t, 1, f.repo.Count())
	})
}

func TestManager_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a valid token", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		token, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)
		require.NoError(t, f.manager.Validate(ctx, token.Token, testSessionID))
	})

	t.Run("empty token is reported as missing", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		err := f.manager.Validate(ctx, "", testSessionID)
		require.ErrorIs(t, err, errors.ErrCsrfTokenMissing)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		err := f.manager.Validate(ctx, "never-issued", testSessionID)
		require.ErrorIs(t, err, errors.ErrCsrfTokenInvalid)
	})

	t.Run("token bound to another session is invalid", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		token, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)

		err = f.manager.Validate(ctx, token.Token, otherSessionID)
		require.ErrorIs(t, err, errors.ErrCsrfTokenInvalid)
	})

	t.Run("token is invalid exactly at its expiry instant", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		token, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)

		f.now = token.ExpiresAt
		err = f.manager.Validate(ctx, token.Token, testSessionID)
		require.ErrorIs(t, err, errors.ErrCsrfTokenInvalid)
	})

	t.Run("token is valid just before expiry", func(t *testing.T) {
		f := setupTestFixture(t, 0)

		token, err := f.manager.Issue(ctx, testSessionID)
		require.NoError(t, err)

		f.now = token.ExpiresAt.Add(-time.Second)
		require.NoError(t, f.manager.Validate(ctx, token.Token, testSessionID))
	})
}

func TestManager_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t, 0)

	token, err := f.manager.Issue(ctx, testSessionID)
	require.NoError(t, err)
	other, err := f.manager.Issue(ctx, otherSessionID)
	require.NoError(t, err)

	require.NoError(t, f.manager.InvalidateAll(ctx, testSessionID))

	err = f.manager.Validate(ctx, token.Token, testSessionID)
	require.ErrorIs(t, err, errors.ErrCsrfTokenInvalid)

	// The other session's token is untouched
	require.NoError(t, f.manager.Validate(ctx, other.Token, otherSessionID))
}
