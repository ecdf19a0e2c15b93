package membership

import (
	"context"
	"fmt"

	"clubhouse/internal/domain"
	"clubhouse/internal/testutil"
)

// errTest is a sentinel error for test scenarios.
var errTest = fmt.Errorf("test error")

// adminCtx returns a context with an admin principal.
func adminCtx() context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{UserID: 1, Role: domain.RoleAdmin})
}

// memberCtx returns a context with a MEMBER principal of the given id.
func memberCtx(id int64) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{UserID: id, Role: domain.RoleMember})
}

func strPtr(s string) *string { return &s }

// Type aliases for convenience — keeps test code short.
type mockUserRepo = testutil.MockUserRepo
type mockAttendanceRepo = testutil.MockAttendanceRepo
type mockAuditRepo = testutil.MockAuditRepo
