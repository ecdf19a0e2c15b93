package governance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/domain"
	"clubhouse/internal/testutil"
)

var errTest = fmt.Errorf("test error")

func adminCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{UserID: 1, Role: domain.RoleAdmin})
}

func memberCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{UserID: 7, Role: domain.RoleMember})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuditService_List(t *testing.T) {
	t.Run("admin_reads_log", func(t *testing.T) {
		repo := &testutil.MockAuditRepo{
			ListFn: func(_ context.Context, limit int) ([]domain.AuditEntry, error) {
				assert.Equal(t, 50, limit)
				return []domain.AuditEntry{
					{ID: 2, Action: domain.AuditCreateEvent},
					{ID: 1, Action: domain.AuditCreateUser},
				}, nil
			},
		}
		svc := NewAuditService(repo)

		entries, err := svc.List(adminCtx(), 50)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, int64(2), entries[0].ID)
	})

	t.Run("member_forbidden", func(t *testing.T) {
		svc := NewAuditService(&testutil.MockAuditRepo{})
		_, err := svc.List(memberCtx(), 0)
		var denied *domain.AccessDeniedError
		assert.ErrorAs(t, err, &denied)
	})

	t.Run("anonymous_unauthenticated", func(t *testing.T) {
		svc := NewAuditService(&testutil.MockAuditRepo{})
		_, err := svc.List(context.Background(), 0)
		var unauth *domain.UnauthenticatedError
		assert.ErrorAs(t, err, &unauth)
	})

	t.Run("repo_error", func(t *testing.T) {
		repo := &testutil.MockAuditRepo{
			ListFn: func(_ context.Context, _ int) ([]domain.AuditEntry, error) {
				return nil, errTest
			},
		}
		svc := NewAuditService(repo)
		_, err := svc.List(adminCtx(), 0)
		assert.ErrorIs(t, err, errTest)
	})
}

func TestRetention_PruneUsesWindow(t *testing.T) {
	var gotCutoff time.Time
	repo := &testutil.MockAuditRepo{
		DeleteOlderThanFn: func(_ context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 3, nil
		},
	}
	r := NewRetention(repo, 30*24*time.Hour, discardLogger())

	before := time.Now().Add(-30 * 24 * time.Hour)
	r.prune(context.Background())
	after := time.Now().Add(-30 * 24 * time.Hour)

	assert.False(t, gotCutoff.Before(before))
	assert.False(t, gotCutoff.After(after))
}

func TestRetention_DisabledWindow(t *testing.T) {
	r := NewRetention(&testutil.MockAuditRepo{}, 0, discardLogger())
	require.NoError(t, r.Start())
	r.Stop() // no cron was started; Stop is a no-op
}

func TestRetention_StartStop(t *testing.T) {
	r := NewRetention(&testutil.MockAuditRepo{}, time.Hour, discardLogger())
	require.NoError(t, r.Start())
	r.Stop()
}
