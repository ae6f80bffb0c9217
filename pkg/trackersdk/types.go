package trackersdk

import "time"

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type UserInfo struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RoleGrantRequest struct {
	Role string `json:"role"`
}

type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

type ProjectInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by"`
	IsActive    bool   `json:"is_active"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ListProjectsResponse struct {
	Projects []ProjectInfo `json:"projects"`
}

type AssignUserRequest struct {
	UserID string `json:"user_id"`
}

type AssignmentInfo struct {
	ProjectID  string `json:"project_id"`
	UserID     string `json:"user_id"`
	AssignedBy string `json:"assigned_by"`
}

type TimeEntryInfo struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ProjectID       string     `json:"project_id"`
	Description     string     `json:"description,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	IsRunning       bool       `json:"is_running"`
}

type StartTimerRequest struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description,omitempty"`
}

type ManualEntryRequest struct {
	ProjectID   string    `json:"project_id"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type ListEntriesResponse struct {
	Entries []TimeEntryInfo `json:"entries"`
}

type SummaryRow struct {
	User    string  `json:"user"`
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
}

type NameHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type SummaryResponse struct {
	Rows          []SummaryRow `json:"rows"`
	UserTotals    []NameHours  `json:"user_totals"`
	ProjectTotals []NameHours  `json:"project_totals"`
	TotalHours    float64      `json:"total_hours"`
}

type BootstrapRequest struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
