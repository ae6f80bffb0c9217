// Package authz is the policy engine deciding whether an actor may perform
// an operation on a resource. It is a pure decision procedure: callers
// supply the actor's current role grants and the membership fact for the
// resource's project, and treat a deny as a hard stop before touching the
// store.
package authz

import (
	"errors"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
)

// ErrDenied is returned for every denied check. It deliberately carries no
// detail about the resource so a denial never confirms existence.
var ErrDenied = errors.New("authz: denied")

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

type Kind string

const (
	KindProfile    Kind = "profile"
	KindProject    Kind = "project"
	KindAssignment Kind = "assignment"
	KindTimeEntry  Kind = "time_entry"

	// KindRoleGrant covers role grant mutations, which only admins may
	// perform. It has no non-admin rule, so everything falls through to
	// the final deny.
	KindRoleGrant Kind = "role_grant"
)

// Resource describes the target of a check. OwnerID is the owning or
// creating user where the kind has one (profile owner, time entry owner,
// assignment creator). ProjectID is set for project-scoped kinds.
type Resource struct {
	Kind      Kind
	OwnerID   string
	ProjectID string
}

// Authorize applies the decision table, first match wins:
//
//  1. admin: allow everything, except creating a resource owned by a
//     different identity (an admin may view but never fabricate another
//     user's records).
//  2. profile read/update by its owner: allow.
//  3. time entry, actor is owner: allow, all operations. Ownership
//     persists even if the actor was later unassigned from the project.
//  4. time entry, actor is not owner: deny.
//  5. project or assignment read when the actor is assigned to the
//     project: allow.
//  6. everything else: deny.
//
// actorAssigned is the membership fact "an assignment exists for
// (resource's project, actor)", looked up by the caller.
func Authorize(actorID string, roles domain.RoleSet, op Operation, res Resource, actorAssigned bool) error {
	if roles.IsAdmin() {
		if op == OpCreate && res.OwnerID != "" && res.OwnerID != actorID {
			return ErrDenied
		}
		return nil
	}

	switch res.Kind {
	case KindProfile:
		if (op == OpRead || op == OpUpdate) && res.OwnerID == actorID {
			return nil
		}

	case KindTimeEntry:
		if res.OwnerID == actorID {
			return nil
		}

	case KindProject, KindAssignment:
		if op == OpRead && actorAssigned {
			return nil
		}
	}

	return ErrDenied
}
