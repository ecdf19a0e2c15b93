// Package security implements the access decision predicate and principal
// provisioning for the club service.
package security

import (
	"context"

	"clubhouse/internal/domain"
)

// Decision is the tri-state outcome of an access check.
type Decision int

const (
	// Allowed means the operation may proceed.
	Allowed Decision = iota
	// Unauthenticated means the request carried no principal and the
	// operation requires one. Maps to 401 at the boundary.
	Unauthenticated
	// Forbidden means a principal was present but the rule failed.
	// Maps to 403 at the boundary.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "ALLOWED"
	case Unauthenticated:
		return "UNAUTHENTICATED"
	default:
		return "FORBIDDEN"
	}
}

// Operation identifies what the caller is attempting.
type Operation int

const (
	// OpEventRead covers event list/get and attendee listing.
	OpEventRead Operation = iota
	// OpEventWrite covers event create/update/delete and attendance
	// administration on behalf of other users.
	OpEventWrite
	// OpUserCreate is self-registration.
	OpUserCreate
	// OpUserList is listing all users.
	OpUserList
	// OpUserAccess covers get/update/delete of a specific user, their
	// attended-events listing, and attendance changes for that user.
	// The owner id is the target user's id.
	OpUserAccess
	// OpRoleChange grants or revokes ADMIN.
	OpRoleChange
	// OpAuditRead reads the audit log.
	OpAuditRead
)

// Decide evaluates the access rule for op. p is nil for anonymous requests.
// ownerID is the id of the user the operation targets; it is only consulted
// for OpUserAccess. Decide is a pure function of its inputs: it performs no
// I/O and is safe for concurrent use.
func Decide(p *domain.Principal, op Operation, ownerID int64) Decision {
	switch op {
	case OpEventRead, OpUserCreate:
		return Allowed
	case OpEventWrite, OpUserList, OpRoleChange, OpAuditRead:
		return adminOnly(p)
	case OpUserAccess:
		if p == nil {
			return Unauthenticated
		}
		if p.IsAdmin() || p.UserID == ownerID {
			return Allowed
		}
		return Forbidden
	default:
		// Baseline: any other operation just requires authentication.
		if p == nil {
			return Unauthenticated
		}
		return Allowed
	}
}

func adminOnly(p *domain.Principal) Decision {
	if p == nil {
		return Unauthenticated
	}
	if !p.IsAdmin() {
		return Forbidden
	}
	return Allowed
}

// Check runs Decide and converts a deny into the matching domain error, so
// services can gate each method with a single call.
func Check(p *domain.Principal, op Operation, ownerID int64) error {
	switch Decide(p, op, ownerID) {
	case Allowed:
		return nil
	case Unauthenticated:
		return domain.ErrUnauthenticated("authentication required")
	default:
		return domain.ErrAccessDenied("insufficient privileges")
	}
}

// Caller extracts the principal from ctx as a pointer, nil when the request
// is anonymous. The pointer form is what Decide takes, keeping "no principal"
// explicit.
func Caller(ctx context.Context) *domain.Principal {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return nil
	}
	return &p
}
