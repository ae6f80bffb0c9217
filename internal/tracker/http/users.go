package http

import (
	"encoding/json"
	"net/http"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"
	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

// UsersHandler handles user provisioning, profiles and role grants.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles POST /v1/users
//
//	@Summary		Provision User
//	@Description	Creates a user account with a default member role grant. Admin only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		trackersdk.CreateUserRequest	true	"User creation request"
//	@Success		201		{object}	trackersdk.UserInfo				"Created user"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackersdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	user, err := h.UserService.CreateUser(ctx, httpx.ActorID(ctx), req.Email, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userInfo(user, domain.RoleSet{domain.RoleMember}))
}

// HandleList handles GET /v1/users
//
//	@Summary		List Users
//	@Description	Returns every user with their role grants. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	trackersdk.ListUsersResponse	"Users"
//	@Failure		403	{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profiles, err := h.UserService.ListUsers(ctx, httpx.ActorID(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	users := make([]trackersdk.UserInfo, len(profiles))
	for i, p := range profiles {
		users[i] = userInfo(p.User, p.Roles)
	}

	httpx.WriteJSON(w, http.StatusOK, trackersdk.ListUsersResponse{Users: users})
}

// HandleGet handles GET /v1/users/{id}
//
//	@Summary		Get Profile
//	@Description	Returns a user profile. Members can read their own profile; admins can read any. A denied read reports not found.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"User ID (ULID)"
//	@Success		200	{object}	trackersdk.UserInfo			"Profile"
//	@Failure		404	{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.UserService.GetProfile(ctx, httpx.ActorID(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(profile.User, profile.Roles))
}

// HandlePatch handles PATCH /v1/users/{id}
//
//	@Summary		Update Profile
//	@Description	Updates the mutable name fields of a profile. Identity fields (id, email) are immutable.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"User ID (ULID)"
//	@Param			request	body		trackersdk.UpdateProfileRequest	true	"Profile update"
//	@Success		200		{object}	trackersdk.UserInfo				"Updated profile"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users/{id} [patch].
func (h *UsersHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackersdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	user, err := h.UserService.UpdateProfile(ctx, httpx.ActorID(ctx), r.PathValue("id"), req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(user, nil))
}

// HandleGrantRole handles POST /v1/users/{id}/roles
//
//	@Summary		Grant Role
//	@Description	Grants a role to a user. Admin only. Duplicate grants are rejected.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string						true	"User ID (ULID)"
//	@Param			request	body	trackersdk.RoleGrantRequest	true	"Role to grant"
//	@Success		204		"Role granted"
//	@Failure		400		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id}/roles [post].
func (h *UsersHandler) HandleGrantRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req trackersdk.RoleGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	userID := r.PathValue("id")
	if err := h.UserService.AddRoleGrant(ctx, httpx.ActorID(ctx), userID, domain.Role(req.Role)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("role grant added", "user_id", userID, "role", req.Role)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRevokeRole handles DELETE /v1/users/{id}/roles/{role}
//
//	@Summary		Revoke Role
//	@Description	Revokes a role grant from a user. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string	true	"User ID (ULID)"
//	@Param			role	path	string	true	"Role name"
//	@Success		204		"Role revoked"
//	@Failure		403		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{id}/roles/{role} [delete].
func (h *UsersHandler) HandleRevokeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.PathValue("id")
	role := domain.Role(r.PathValue("role"))
	if err := h.UserService.RemoveRoleGrant(ctx, httpx.ActorID(ctx), userID, role); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
