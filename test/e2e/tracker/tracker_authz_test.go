package tracker_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

// TestUnauthenticatedRequests verifies that protected endpoints refuse
// requests without a valid bearer token.
func TestUnauthenticatedRequests(t *testing.T) {
	baseURL, cleanup := setupTrackerContainer(t)
	defer cleanup()

	bootstrapService(t, baseURL)

	anon := trackersdk.NewClient(baseURL, "")
	_, err := anon.ListProjects(t.Context())
	assertAPIError(t, err, http.StatusUnauthorized, "Anonymous list should be refused")

	forged := trackersdk.NewClient(baseURL, "not-a-jwt")
	_, err = forged.ListProjects(t.Context())
	assertAPIError(t, err, http.StatusUnauthorized, "Garbage token should be refused")
}

// TestMemberPermissions verifies the member/admin split on management
// endpoints and the scoping of member reads.
func TestMemberPermissions(t *testing.T) {
	baseURL, cleanup := setupTrackerContainer(t)
	defer cleanup()

	admin, adminID := bootstrapService(t, baseURL)
	member, memberID := provisionMember(t, baseURL, admin, "plain@example.com")

	// Members cannot manage projects or users.
	_, err := member.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Skunkworks"})
	assertAPIError(t, err, http.StatusForbidden, "Member project creation should be denied")

	_, err = member.CreateUser(t.Context(), trackersdk.CreateUserRequest{
		Email: "sneaky@example.com", FirstName: "S", LastName: "N",
	})
	assertAPIError(t, err, http.StatusForbidden, "Member user creation should be denied")

	_, err = member.ListUsers(t.Context())
	assertAPIError(t, err, http.StatusForbidden, "Member user listing should be denied")

	err = member.GrantRole(t.Context(), memberID, "admin")
	assertAPIError(t, err, http.StatusForbidden, "Member self-promotion should be denied")

	// Members see their own profile but not others'.
	profile, err := member.GetProfile(t.Context(), memberID)
	require.NoError(t, err)
	require.Equal(t, "plain@example.com", profile.Email)

	_, err = member.GetProfile(t.Context(), adminID)
	assertAPIError(t, err, http.StatusNotFound, "Foreign profile should look missing")

	// Members only see projects they are assigned to.
	visible, err := admin.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Visible"})
	require.NoError(t, err)
	_, err = admin.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Hidden"})
	require.NoError(t, err)
	_, err = admin.AssignUser(t.Context(), visible.ID, memberID)
	require.NoError(t, err)

	projects, err := member.ListProjects(t.Context())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "Visible", projects[0].Name)
}

// TestRoleGrantTakesEffectImmediately verifies that a promoted member gains
// admin powers on their very next request, with no re-issued token.
func TestRoleGrantTakesEffectImmediately(t *testing.T) {
	baseURL, cleanup := setupTrackerContainer(t)
	defer cleanup()

	admin, _ := bootstrapService(t, baseURL)
	member, memberID := provisionMember(t, baseURL, admin, "promoted@example.com")

	_, err := member.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Before"})
	assertAPIError(t, err, http.StatusForbidden, "Pre-promotion creation should be denied")

	err = admin.GrantRole(t.Context(), memberID, "admin")
	require.NoError(t, err)

	// Same bearer token, new powers.
	project, err := member.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "After"})
	require.NoError(t, err)
	require.Equal(t, "After", project.Name)

	// Revocation is just as immediate.
	err = admin.RevokeRole(t.Context(), memberID, "admin")
	require.NoError(t, err)

	_, err = member.ToggleProjectActive(t.Context(), project.ID)
	assertAPIError(t, err, http.StatusForbidden, "Post-revocation toggle should be denied")
}
