package http

import (
	"encoding/json"
	"net/http"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

// ProjectsHandler handles project management and assignment endpoints.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles POST /v1/projects
//
//	@Summary		Create Project
//	@Description	Creates a project, active by default. Admin only.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		trackersdk.CreateProjectRequest	true	"Project creation request"
//	@Success		201		{object}	trackersdk.ProjectInfo			"Created project"
//	@Failure		400		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	trackersdk.ErrorResponse		"error, error_description"
//	@Router			/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackersdk.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	project, err := h.ProjectService.CreateProject(ctx, httpx.ActorID(ctx), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, projectInfo(project))
}

// HandleList handles GET /v1/projects
//
//	@Summary		List Projects
//	@Description	Admins see every project; members see the projects they are assigned to.
//	@Tags			Projects
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	trackersdk.ListProjectsResponse	"Projects"
//	@Router			/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.ProjectService.ListProjects(ctx, httpx.ActorID(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	infos := make([]trackersdk.ProjectInfo, len(projects))
	for i, p := range projects {
		infos[i] = projectInfo(p)
	}

	httpx.WriteJSON(w, http.StatusOK, trackersdk.ListProjectsResponse{Projects: infos})
}

// HandleToggle handles POST /v1/projects/{id}/toggle
//
//	@Summary		Toggle Project Active
//	@Description	Flips a project between active and inactive. Existing assignments and entries are untouched. Admin only.
//	@Tags			Projects
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"Project ID (ULID)"
//	@Success		200	{object}	trackersdk.ProjectInfo		"Updated project"
//	@Failure		403	{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects/{id}/toggle [post].
func (h *ProjectsHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.ProjectService.ToggleActive(ctx, httpx.ActorID(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectInfo(project))
}

// HandleAssign handles POST /v1/projects/{id}/assignments
//
//	@Summary		Assign User
//	@Description	Assigns a user to a project, granting visibility of it. Duplicate assignments are rejected. Admin only.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Project ID (ULID)"
//	@Param			request	body		trackersdk.AssignUserRequest	true	"User to assign"
//	@Success		201		{object}	trackersdk.AssignmentInfo	"Created assignment"
//	@Failure		403		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects/{id}/assignments [post].
func (h *ProjectsHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackersdk.AssignUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	assignment, err := h.ProjectService.AssignUser(ctx, httpx.ActorID(ctx), r.PathValue("id"), req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, assignmentInfo(assignment))
}

// HandleUnassign handles DELETE /v1/projects/{id}/assignments/{user_id}
//
//	@Summary		Unassign User
//	@Description	Removes a user's project assignment. Historical time entries are untouched. Admin only.
//	@Tags			Projects
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string	true	"Project ID (ULID)"
//	@Param			user_id	path	string	true	"User ID (ULID)"
//	@Success		204		"Assignment removed"
//	@Failure		403		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	trackersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/projects/{id}/assignments/{user_id} [delete].
func (h *ProjectsHandler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.ProjectService.UnassignUser(ctx, httpx.ActorID(ctx), r.PathValue("id"), r.PathValue("user_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
