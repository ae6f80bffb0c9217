package store

import (
	"context"
	"errors"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns separated and make the
// transactional scope explicit: a Tx exposes the same repos bound to one
// transaction.
type Store interface {
	Users() Users
	Roles() Roles
	Projects() Projects
	Assignments() Assignments
	TimeEntries() TimeEntries

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit or Rollback the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns
	// nil and rolling back otherwise. Preferred over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user by its unique email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// A duplicate email maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserName sets the mutable name fields and bumps updated_at.
	UpdateUserName(ctx context.Context, userID, firstName, lastName string) error

	// ListUsers returns all users ordered by creation (oldest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// IsEmpty reports whether no users exist yet (bootstrap gate).
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// ListForUser returns the user's current role grants. Called fresh
	// per request; never cached by services.
	ListForUser(ctx context.Context, userID string) (domain.RoleSet, error)

	// Grant adds a role to a user; duplicate grants map to
	// ErrAlreadyExists.
	Grant(ctx context.Context, userID string, role domain.Role) error

	// Revoke removes a grant; missing grants map to ErrNotFound.
	Revoke(ctx context.Context, userID string, role domain.Role) error
}

type Projects interface {
	// GetProjectByID returns a project by id.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// CreateProject inserts a new project.
	CreateProject(ctx context.Context, p domain.Project) error

	// SetActive flips is_active and bumps updated_at. It does not touch
	// assignments or time entries.
	SetActive(ctx context.Context, projectID string, active bool) error

	// ListAll returns every project (admin view), newest first.
	ListAll(ctx context.Context) ([]domain.Project, error)

	// ListForUser returns projects the user is assigned to, newest first.
	ListForUser(ctx context.Context, userID string) ([]domain.Project, error)
}

type Assignments interface {
	// Create inserts an assignment; the (project, user) primary key maps
	// duplicates to ErrAlreadyExists.
	Create(ctx context.Context, a domain.Assignment) error

	// Delete removes an assignment; missing rows map to ErrNotFound.
	Delete(ctx context.Context, projectID, userID string) error

	// Exists reports whether (project, user) is assigned.
	Exists(ctx context.Context, projectID, userID string) (bool, error)

	// ListForProject returns assignments of a project, oldest first.
	ListForProject(ctx context.Context, projectID string) ([]domain.Assignment, error)
}

// TimeEntryFilter narrows ListEntries. Zero fields are ignored. Day
// matches entries whose start_time falls on that UTC calendar day.
type TimeEntryFilter struct {
	UserID    string
	ProjectID string
	Day       *time.Time
}

type TimeEntries interface {
	// Create inserts an entry. Inserting a running entry for a user who
	// already has one violates the partial unique index and maps to
	// ErrAlreadyExists; the service turns that into its conflict error.
	Create(ctx context.Context, e domain.TimeEntry) error

	// GetByID returns an entry by id.
	GetByID(ctx context.Context, id string) (domain.TimeEntry, error)

	// GetRunningForUser returns the user's running entry, ErrNotFound if
	// none.
	GetRunningForUser(ctx context.Context, userID string) (domain.TimeEntry, error)

	// Stop finalizes a running entry: sets end_time and the derived
	// duration, clears is_running, bumps updated_at. The duration is
	// computed by the service, never by the store.
	Stop(ctx context.Context, id string, endTime time.Time, durationMinutes int64) error

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, f TimeEntryFilter) ([]domain.TimeEntry, error)
}
