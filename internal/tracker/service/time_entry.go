package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/authz"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/pkg/idx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"
)

type TimeEntryService struct {
	Store store.Store
}

// StartTimer opens a running entry for the actor on the given project.
// The "no running entry exists" check is not done here: the insert races
// against concurrent starts for the same user, and the storage layer's
// partial unique index is the only arbiter. A losing insert comes back as
// a conflict naming the project of the entry already running.
func (s *TimeEntryService) StartTimer(
	ctx context.Context,
	actorID string,
	projectID string,
	description string,
) (domain.TimeEntry, error) {
	log := slogx.FromContext(ctx)

	// 1. The project must exist. FKs would catch this too, but a clean
	// not-found beats a constraint error.
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TimeEntry{}, ErrNotFound
		}
		log.Error("failed to fetch project", slog.Any("error", err))
		return domain.TimeEntry{}, err
	}

	// 2. Authorization: creating a time entry owned by the actor.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpCreate, authz.Resource{
		Kind:      authz.KindTimeEntry,
		OwnerID:   actorID,
		ProjectID: projectID,
	}); err != nil {
		return domain.TimeEntry{}, err
	}

	// 3. Insert the running entry. A unique-index violation means a
	// timer is already running for this user.
	entry := domain.TimeEntry{
		ID:          idx.New().String(),
		UserID:      actorID,
		ProjectID:   projectID,
		Description: description,
		StartTime:   time.Now().UTC(),
		IsRunning:   true,
	}

	if err := s.Store.TimeEntries().Create(ctx, entry); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.TimeEntry{}, s.runningConflict(ctx, actorID)
		}
		log.Error("failed to create time entry",
			slog.String("user_id", actorID),
			slog.Any("error", err),
		)
		return domain.TimeEntry{}, err
	}

	log.Debug("timer started",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", actorID),
		slog.String("project_id", projectID),
	)

	return entry, nil
}

// runningConflict builds the conflict error for a blocked timer start,
// naming the project of the entry currently running so the caller can
// offer to stop it first.
func (s *TimeEntryService) runningConflict(ctx context.Context, userID string) error {
	running, err := s.Store.TimeEntries().GetRunningForUser(ctx, userID)
	if err != nil {
		// The running entry stopped between our insert and this lookup.
		// Still report the conflict; the caller can simply retry.
		return &TimerRunningError{}
	}

	conflict := &TimerRunningError{
		EntryID:   running.ID,
		ProjectID: running.ProjectID,
	}
	if p, err := s.Store.Projects().GetProjectByID(ctx, running.ProjectID); err == nil {
		conflict.ProjectName = p.Name
	}
	return conflict
}

// StopTimer finalizes the actor's running entry: sets the end time, clears
// the running flag and computes the derived duration in one write.
func (s *TimeEntryService) StopTimer(
	ctx context.Context,
	actorID string,
	entryID string,
) (domain.TimeEntry, error) {
	log := slogx.FromContext(ctx)

	// 1. Fetch the entry. Absent and not-owned are deliberately the same
	// failure so a stop request never probes another user's entries.
	entry, err := s.Store.TimeEntries().GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TimeEntry{}, ErrNotFound
		}
		log.Error("failed to fetch time entry", slog.Any("error", err))
		return domain.TimeEntry{}, err
	}
	if entry.UserID != actorID {
		return domain.TimeEntry{}, ErrNotFound
	}

	// 2. Authorization: updating an entry the actor owns.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpUpdate, authz.Resource{
		Kind:      authz.KindTimeEntry,
		OwnerID:   entry.UserID,
		ProjectID: entry.ProjectID,
	}); err != nil {
		return domain.TimeEntry{}, err
	}

	// 3. Only a running entry can be stopped.
	if !entry.IsRunning {
		return domain.TimeEntry{}, ErrNotRunning
	}

	// 4. Finalize. The update is guarded on is_running so a concurrent
	// stop of the same entry loses cleanly.
	endTime := time.Now().UTC()
	duration := domain.DurationBetween(entry.StartTime, endTime)
	if err := s.Store.TimeEntries().Stop(ctx, entry.ID, endTime, duration); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TimeEntry{}, ErrNotRunning
		}
		log.Error("failed to stop time entry",
			slog.String("entry_id", entry.ID),
			slog.Any("error", err),
		)
		return domain.TimeEntry{}, err
	}

	entry.EndTime = &endTime
	entry.DurationMinutes = &duration
	entry.IsRunning = false

	log.Debug("timer stopped",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", actorID),
		slog.Int64("duration_minutes", duration),
	)

	return entry, nil
}

// CreateManualEntry records a completed work session. The duration is
// derived at creation; the entry is never in the running state.
func (s *TimeEntryService) CreateManualEntry(
	ctx context.Context,
	actorID string,
	projectID string,
	description string,
	startTime time.Time,
	endTime time.Time,
) (domain.TimeEntry, error) {
	log := slogx.FromContext(ctx)

	// 1. The range must be strictly positive.
	if !endTime.After(startTime) {
		return domain.TimeEntry{}, ErrInvalidRange
	}

	// 2. The project must exist.
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TimeEntry{}, ErrNotFound
		}
		log.Error("failed to fetch project", slog.Any("error", err))
		return domain.TimeEntry{}, err
	}

	// 3. Authorization, same rule as StartTimer.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpCreate, authz.Resource{
		Kind:      authz.KindTimeEntry,
		OwnerID:   actorID,
		ProjectID: projectID,
	}); err != nil {
		return domain.TimeEntry{}, err
	}

	// 4. Insert with the derived duration.
	duration := domain.DurationBetween(startTime, endTime)
	entry := domain.TimeEntry{
		ID:              idx.New().String(),
		UserID:          actorID,
		ProjectID:       projectID,
		Description:     description,
		StartTime:       startTime.UTC(),
		EndTime:         ptrTime(endTime.UTC()),
		DurationMinutes: &duration,
		IsRunning:       false,
	}

	if err := s.Store.TimeEntries().Create(ctx, entry); err != nil {
		log.Error("failed to create manual entry",
			slog.String("user_id", actorID),
			slog.Any("error", err),
		)
		return domain.TimeEntry{}, err
	}

	return entry, nil
}

// ListEntries returns entries the actor may read. Non-admin scope is
// enforced here, not in the handler: whatever user filter a member
// requests, the query runs against their own entries only.
func (s *TimeEntryService) ListEntries(
	ctx context.Context,
	actorID string,
	filter store.TimeEntryFilter,
) ([]domain.TimeEntry, error) {
	roles, err := s.Store.Roles().ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !roles.IsAdmin() {
		filter.UserID = actorID
	}

	return s.Store.TimeEntries().List(ctx, filter)
}

func ptrTime(t time.Time) *time.Time { return &t }
