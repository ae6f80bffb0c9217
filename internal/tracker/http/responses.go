package http

import (
	"errors"
	"net/http"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/authz"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/service"
	"github.com/harsh-khulbe03/Minutron/pkg/httpx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"
	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

func userInfo(u domain.User, roles domain.RoleSet) trackersdk.UserInfo {
	out := trackersdk.UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	for _, r := range roles {
		out.Roles = append(out.Roles, string(r))
	}
	return out
}

func projectInfo(p domain.Project) trackersdk.ProjectInfo {
	return trackersdk.ProjectInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		IsActive:    p.IsActive,
	}
}

func assignmentInfo(a domain.Assignment) trackersdk.AssignmentInfo {
	return trackersdk.AssignmentInfo{
		ProjectID:  a.ProjectID,
		UserID:     a.UserID,
		AssignedBy: a.AssignedBy,
	}
}

func entryInfo(e domain.TimeEntry) trackersdk.TimeEntryInfo {
	return trackersdk.TimeEntryInfo{
		ID:              e.ID,
		UserID:          e.UserID,
		ProjectID:       e.ProjectID,
		Description:     e.Description,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		IsRunning:       e.IsRunning,
	}
}

func summaryResponse(s service.Summary) trackersdk.SummaryResponse {
	out := trackersdk.SummaryResponse{
		Rows:          make([]trackersdk.SummaryRow, len(s.Rows)),
		UserTotals:    make([]trackersdk.NameHours, len(s.UserTotals)),
		ProjectTotals: make([]trackersdk.NameHours, len(s.ProjectTotals)),
		TotalHours:    s.TotalHours,
	}
	for i, row := range s.Rows {
		out.Rows[i] = trackersdk.SummaryRow{
			User:    row.User,
			Project: row.Project,
			Hours:   row.Hours,
		}
	}
	for i, t := range s.UserTotals {
		out.UserTotals[i] = trackersdk.NameHours{Name: t.Name, Hours: t.Hours}
	}
	for i, t := range s.ProjectTotals {
		out.ProjectTotals[i] = trackersdk.NameHours{Name: t.Name, Hours: t.Hours}
	}
	return out
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unrecognized errors are logged and surfaced as opaque server errors.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var timerConflict *service.TimerRunningError

	switch {
	case errors.As(err, &timerConflict):
		httpx.WriteJSON(w, http.StatusConflict, trackersdk.ErrorResponse{
			Error:            "timer_running",
			ErrorDescription: timerConflict.Error(),
		})

	case errors.Is(err, service.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, trackersdk.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "Resource not found",
		})

	case errors.Is(err, authz.ErrDenied):
		httpx.WriteJSON(w, http.StatusForbidden, trackersdk.ErrorResponse{
			Error:            "access_denied",
			ErrorDescription: "You are not allowed to perform this operation",
		})

	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRole):
		httpx.WriteJSON(w, http.StatusBadRequest, trackersdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})

	case errors.Is(err, service.ErrNotRunning):
		httpx.WriteJSON(w, http.StatusConflict, trackersdk.ErrorResponse{
			Error:            "not_running",
			ErrorDescription: "Time entry is not running",
		})

	case errors.Is(err, service.ErrDuplicateAssignment),
		errors.Is(err, service.ErrDuplicateRoleGrant),
		errors.Is(err, service.ErrEmailTaken):
		httpx.WriteJSON(w, http.StatusConflict, trackersdk.ErrorResponse{
			Error:            "conflict",
			ErrorDescription: err.Error(),
		})

	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, trackersdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "An internal error occurred",
		})
	}
}

func writeInvalidJSON(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, trackersdk.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "Request body must be valid JSON",
	})
}
