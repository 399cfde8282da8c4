package audit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/seedvault/seedvault/audit"
	"github.com/seedvault/seedvault/audit/repofake"
	"github.com/seedvault/seedvault/internal/errors"
	"github.com/stretchr/testify/require"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
	testAdminID     = "admin-1"
)

type testFixture struct {
	repo *repofake.FakeAuditRepo
	log  *audit.Log
	now  time.Time
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		repo: repofake.NewFakeAuditRepo(),
		now:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.log = audit.NewLog(f.repo, defaultPageSize, maxPageSize, audit.WithNowTime(func() time.Time {
		return f.now
	}))
	return f
}

// record appends one entry and advances the clock by a minute.
func (f *testFixture) record(t *testing.T, action audit.Action, targetID string) string {
	t.Helper()

	id, err := f.log.Record(context.Background(), &audit.Entry{
		AdminID:    testAdminID,
		AdminEmail: "admin@example.com",
		Action:     action,
		TargetType: audit.TargetUser,
		TargetID:   targetID,
	})
	require.NoError(t, err)
	f.now = f.now.Add(time.Minute)
	return id
}

func TestLog_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps id and created time", func(t *testing.T) {
		f := setupTestFixture(t)

		entry := &audit.Entry{
			AdminID:  testAdminID,
			Action:   audit.ActionUserDelete,
			TargetID: "user-1",
		}
		id, err := f.log.Record(ctx, entry)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		require.Equal(t, f.now, entry.CreatedAt)
	})

	t.Run("rejects an unknown action", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.log.Record(ctx, &audit.Entry{
			AdminID: testAdminID,
			Action:  audit.Action("user_promote"),
		})
		require.ErrorIs(t, err, errors.ErrValidationFailed)
		require.Equal(t, 0, f.repo.Count())
	})

	t.Run("rejects a missing admin id", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.log.Record(ctx, &audit.Entry{Action: audit.ActionUserDelete})
		require.ErrorIs(t, err, errors.ErrValidationFailed)
	})
}

func TestLog_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("returns entries newest first", func(t *testing.T) {
		f := setupTestFixture(t)
		f.record(t, audit.ActionUserDelete, "user-1")
		f.record(t, audit.ActionPlantCreate, "plant-1")
		f.record(t, audit.ActionPlantDelete, "plant-1")

		result, err := f.log.Query(ctx, audit.Filters{})
		require.NoError(t, err)
		require.Len(t, result.Entries, 3)
		require.Equal(t, audit.ActionPlantDelete, result.Entries[0].Action)
		require.Equal(t, audit.ActionUserDelete, result.Entries[2].Action)
		require.False(t, result.HasMore)
	})

	t.Run("filters by action and target", func(t *testing.T) {
		f := setupTestFixture(t)
		f.record(t, audit.ActionUserDelete, "user-1")
		f.record(t, audit.ActionPlantCreate, "plant-1")
		f.record(t, audit.ActionPlantUpdate, "plant-1")

		result, err := f.log.Query(ctx, audit.Filters{TargetID: "plant-1"})
		require.NoError(t, err)
		require.Len(t, result.Entries, 2)
		require.Equal(t, 2, result.Total)

		result, err = f.log.Query(ctx, audit.Filters{Action: audit.ActionPlantCreate})
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
	})

	t.Run("filters by time range inclusively", func(t *testing.T) {
		f := setupTestFixture(t)
		start := f.now
		f.record(t, audit.ActionUserDelete, "user-1") // at start
		mid := f.now
		f.record(t, audit.ActionUserDelete, "user-2") // at start+1m
		f.record(t, audit.ActionUserDelete, "user-3") // at start+2m

		result, err := f.log.Query(ctx, audit.Filters{From: start, To: mid})
		require.NoError(t, err)
		require.Len(t, result.Entries, 2)
		require.Equal(t, "user-2", result.Entries[0].TargetID)
		require.Equal(t, "user-1", result.Entries[1].TargetID)
	})

	t.Run("defaults the page size", func(t *testing.T) {
		f := setupTestFixture(t)
		for i := 0; i < defaultPageSize+10; i++ {
			f.record(t, audit.ActionUserDelete, fmt.Sprintf("user-%d", i))
		}

		result, err := f.log.Query(ctx, audit.Filters{})
		require.NoError(t, err)
		require.Len(t, result.Entries, defaultPageSize)
		require.Equal(t, defaultPageSize+10, result.Total)
		require.True(t, result.HasMore)
	})

	t.Run("clamps an oversized page to the cap", func(t *testing.T) {
		f := setupTestFixture(t)
		for i := 0; i < maxPageSize+5; i++ {
			f.record(t, audit.ActionUserDelete, fmt.Sprintf("user-%d", i))
		}

		result, err := f.log.Query(ctx, audit.Filters{Limit: 10_000})
		require.NoError(t, err)
		require.Len(t, result.Entries, maxPageSize)
		require.True(t, result.HasMore)
	})

	t.Run("pages with offset", func(t *testing.T) {
		f := setupTestFixture(t)
		for i := 0; i < 5; i++ {
			f.record(t, audit.ActionUserDelete, fmt.Sprintf("user-%d", i))
		}

		result, err := f.log.Query(ctx, audit.Filters{Limit: 2, Offset: 4})
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		require.Equal(t, "user-0", result.Entries[0].TargetID)
		require.False(t, result.HasMore)
	})
}
