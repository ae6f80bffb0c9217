package service

import (
	"errors"
	"fmt"
)

// Shared error taxonomy surfaced to callers as typed failures. Conflicts
// are never retried internally; the caller decides how to resolve them.
var (
	// ErrNotFound covers both "absent" and "not owned by the caller" so
	// a response never confirms that a hidden resource exists.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidRange rejects manual entries whose end does not come
	// strictly after their start.
	ErrInvalidRange = errors.New("end time must be after start time")

	// ErrNotRunning rejects a stop request on an entry that is already
	// stopped.
	ErrNotRunning = errors.New("time entry is not running")

	// ErrTimerRunning is the conflict sentinel matched by errors.Is
	// against a *TimerRunningError.
	ErrTimerRunning = errors.New("timer already running")

	// ErrDuplicateAssignment rejects assigning a user to a project they
	// are already assigned to. Deliberately a rejection, not a silent
	// no-op.
	ErrDuplicateAssignment = errors.New("user already assigned to project")

	// ErrDuplicateRoleGrant rejects granting a role a user already holds.
	ErrDuplicateRoleGrant = errors.New("role already granted")

	// ErrEmailTaken rejects provisioning a user with an email already in
	// use.
	ErrEmailTaken = errors.New("email already in use")

	ErrEmptyName    = errors.New("name must not be empty")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
)

// TimerRunningError reports a start-timer conflict and names the project of
// the entry that is already running, so the caller can offer to stop it
// first.
type TimerRunningError struct {
	EntryID     string
	ProjectID   string
	ProjectName string
}

func (e *TimerRunningError) Error() string {
	return fmt.Sprintf("timer already running for project %q", e.ProjectName)
}

func (e *TimerRunningError) Is(target error) bool { return target == ErrTimerRunning }
