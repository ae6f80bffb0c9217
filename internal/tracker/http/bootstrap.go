package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"
	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles POST /v1/bootstrap for initial system setup.
//
//	@Summary		Bootstrap the tracker
//	@Description	Creates the first admin user on an empty instance. Guarded by a pre-configured bootstrap token and refused once any user exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trackersdk.BootstrapRequest	true	"Bootstrap request"
//	@Success		201		{object}	trackersdk.UserInfo			"Created admin user"
//	@Failure		400		{object}	trackersdk.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	trackersdk.ErrorResponse	"Invalid token or already bootstrapped"
//	@Failure		404		{object}	trackersdk.ErrorResponse	"Bootstrap not enabled (no token configured)"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Check if enabled.
	if h.BootstrapService.Token == "" {
		httpx.WriteJSON(w, http.StatusNotFound, trackersdk.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "Bootstrap endpoint is not enabled",
		})
		return
	}

	// 2. Parse request body.
	var req trackersdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w)
		return
	}

	// 3. Perform bootstrap.
	admin, err := h.BootstrapService.Bootstrap(ctx, req.Token, req.Email, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			httpx.WriteJSON(w, http.StatusUnauthorized, trackersdk.ErrorResponse{
				Error:            "unauthorized",
				ErrorDescription: "System has already been bootstrapped",
			})
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			httpx.WriteJSON(w, http.StatusUnauthorized, trackersdk.ErrorResponse{
				Error:            "unauthorized",
				ErrorDescription: "Invalid bootstrap token",
			})
		case errors.Is(err, service.ErrInvalidEmail):
			httpx.WriteJSON(w, http.StatusBadRequest, trackersdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "A valid admin email is required",
			})
		default:
			log.Error("bootstrap failed", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, trackersdk.ErrorResponse{
				Error:            "server_error",
				ErrorDescription: "An internal error occurred",
			})
		}
		return
	}

	// 4. Respond with the created admin.
	httpx.WriteJSON(w, http.StatusCreated, userInfo(admin, domain.RoleSet{domain.RoleAdmin, domain.RoleMember}))
}
