package domain

import "time"

type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string // user id of the creating admin
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assignment grants a member visibility of a project and its time entries.
// Unique per (project, user); removed when access is revoked.
type Assignment struct {
	ProjectID  string
	UserID     string
	AssignedBy string
	CreatedAt  time.Time
}
