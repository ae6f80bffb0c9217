package service

import (
	"context"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/authz"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
)

// authorize gathers the inputs the policy engine needs, the actor's
// current role grants (fetched fresh on every call, never cached) and the
// membership fact for the resource's project, and runs the check. The
// role set is returned so callers can reuse it for scoping decisions in
// the same request without a second lookup.
func authorize(
	ctx context.Context,
	st store.Store,
	actorID string,
	op authz.Operation,
	res authz.Resource,
) (domain.RoleSet, error) {
	roles, err := st.Roles().ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	assigned := false
	if res.ProjectID != "" && !roles.IsAdmin() {
		assigned, err = st.Assignments().Exists(ctx, res.ProjectID, actorID)
		if err != nil {
			return nil, err
		}
	}

	if err := authz.Authorize(actorID, roles, op, res, assigned); err != nil {
		return roles, err
	}
	return roles, nil
}
