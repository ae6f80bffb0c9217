package service

import (
	"context"
	"testing"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store/drivers/sqlite"
	"github.com/harsh-khulbe03/Minutron/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, email string, roles ...domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		ID:    idx.New().String(),
		Email: email,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))
	for _, role := range roles {
		require.NoError(t, st.Roles().Grant(ctx, user.ID, role))
	}
	return user
}

func seedProject(t *testing.T, st store.Store, name, createdBy string) domain.Project {
	t.Helper()

	project := domain.Project{
		ID:        idx.New().String(),
		Name:      name,
		CreatedBy: createdBy,
		IsActive:  true,
	}
	require.NoError(t, st.Projects().CreateProject(context.Background(), project))
	return project
}

func seedAssignment(t *testing.T, st store.Store, projectID, userID, assignedBy string) {
	t.Helper()

	require.NoError(t, st.Assignments().Create(context.Background(), domain.Assignment{
		ProjectID:  projectID,
		UserID:     userID,
		AssignedBy: assignedBy,
	}))
}
