package events

import (
	"context"
	"fmt"

	"clubhouse/internal/domain"
	"clubhouse/internal/testutil"
)

// errTest is a sentinel error for test scenarios.
var errTest = fmt.Errorf("test error")

func adminCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{UserID: 1, Role: domain.RoleAdmin})
}

func memberCtx(id int64) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{UserID: id, Role: domain.RoleMember})
}

func validEvent() domain.EventRequest {
	return domain.EventRequest{
		Name:     "Monthly Tasting",
		Date:     "2026-09-12",
		Time:     "19:00",
		Location: "Clubhouse",
	}
}

type mockEventRepo = testutil.MockEventRepo
type mockAttendanceRepo = testutil.MockAttendanceRepo
type mockAuditRepo = testutil.MockAuditRepo
