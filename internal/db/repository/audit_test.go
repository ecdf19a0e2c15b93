package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "clubhouse/internal/db"
	"clubhouse/internal/domain"
)

func TestAuditRepo_InsertAndList(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestStore(t)
	repo := NewAuditRepo(writeDB, readDB)
	ctx := context.Background()

	for i, action := range []string{domain.AuditCreateUser, domain.AuditCreateEvent, domain.AuditSetRole} {
		err := repo.Insert(ctx, &domain.AuditEntry{
			ActorID:  int64(i + 1),
			Action:   action,
			Entity:   "user",
			EntityID: int64(i + 10),
		})
		require.NoError(t, err)
	}

	entries, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.Equal(t, domain.AuditSetRole, entries[0].Action)
	assert.Equal(t, domain.AuditCreateUser, entries[2].Action)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestAuditRepo_ListLimit(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestStore(t)
	repo := NewAuditRepo(writeDB, readDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
			Action: domain.AuditCreateUser, Entity: "user", EntityID: int64(i),
		}))
	}

	entries, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditRepo_DeleteOlderThan(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestStore(t)
	repo := NewAuditRepo(writeDB, readDB)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.AuditEntry{
		Action: domain.AuditCreateUser, Entity: "user", EntityID: 1,
	}))

	t.Run("cutoff_in_past_removes_nothing", func(t *testing.T) {
		n, err := repo.DeleteOlderThan(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("cutoff_in_future_removes_all", func(t *testing.T) {
		n, err := repo.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		entries, err := repo.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
