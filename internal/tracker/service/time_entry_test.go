package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/stretchr/testify/require"
)

func TestStartTimer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", domain.RoleAdmin, domain.RoleMember)
	member := seedUser(t, st, "member@example.com", domain.RoleMember)
	project := seedProject(t, st, "Platform", admin.ID)

	svc := &TimeEntryService{Store: st}

	t.Run("creates a running entry", func(t *testing.T) {
		entry, err := svc.StartTimer(ctx, member.ID, project.ID, "morning work")
		require.NoError(t, err)
		require.True(t, entry.IsRunning)
		require.Nil(t, entry.EndTime)
		require.Nil(t, entry.DurationMinutes)
		require.Equal(t, member.ID, entry.UserID)
		require.Equal(t, project.ID, entry.ProjectID)

		_, err = svc.StopTimer(ctx, member.ID, entry.ID)
		require.NoError(t, err)
	})

	t.Run("unknown project reports not found", func(t *testing.T) {
		_, err := svc.StartTimer(ctx, member.ID, "01JUNKPROJECT0000000000000", "x")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("second start conflicts and names the running project", func(t *testing.T) {
		first, err := svc.StartTimer(ctx, member.ID, project.ID, "first")
		require.NoError(t, err)

		_, err = svc.StartTimer(ctx, member.ID, project.ID, "second")
		require.ErrorIs(t, err, ErrTimerRunning)

		var conflict *TimerRunningError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, first.ID, conflict.EntryID)
		require.Equal(t, project.ID, conflict.ProjectID)
		require.Equal(t, "Platform", conflict.ProjectName)

		_, err = svc.StopTimer(ctx, member.ID, first.ID)
		require.NoError(t, err)
	})

	t.Run("a running timer does not block other users", func(t *testing.T) {
		other := seedUser(t, st, "other@example.com", domain.RoleMember)

		mine, err := svc.StartTimer(ctx, member.ID, project.ID, "mine")
		require.NoError(t, err)
		theirs, err := svc.StartTimer(ctx, other.ID, project.ID, "theirs")
		require.NoError(t, err)

		_, err = svc.StopTimer(ctx, member.ID, mine.ID)
		require.NoError(t, err)
		_, err = svc.StopTimer(ctx, other.ID, theirs.ID)
		require.NoError(t, err)
	})
}

func TestStartTimerConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", domain.RoleAdmin, domain.RoleMember)
	member := seedUser(t, st, "member@example.com", domain.RoleMember)
	project := seedProject(t, st, "Platform", admin.ID)

	svc := &TimeEntryService{Store: st}

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.StartTimer(ctx, member.ID, project.ID, "race")
		}()
	}
	wg.Wait()

	// Exactly one start wins; every loser sees the conflict.
	var won, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrTimerRunning):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, attempts-1, conflicted)

	running, err := st.TimeEntries().GetRunningForUser(ctx, member.ID)
	require.NoError(t, err)
	require.True(t, running.IsRunning)
}

func TestStopTimer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", domain.RoleAdmin, domain.RoleMember)
	member := seedUser(t, st, "member@example.com", domain.RoleMember)
	project := seedProject(t, st, "Platform", admin.ID)

	svc := &TimeEntryService{Store: st}

	t.Run("finalizes the entry", func(t *testing.T) {
		started, err := svc.StartTimer(ctx, member.ID, project.ID, "work")
		require.NoError(t, err)

		stopped, err := svc.StopTimer(ctx, member.ID, started.ID)
		require.NoError(t, err)
		require.False(t, stopped.IsRunning)
		require.NotNil(t, stopped.EndTime)
		require.NotNil(t, stopped.DurationMinutes)
		require.GreaterOrEqual(t, *stopped.DurationMinutes, int64(0))
	})

	t.Run("already stopped entry reports not running", func(t *testing.T) {
		started, err := svc.StartTimer(ctx, member.ID, project.ID, "work")
		require.NoError(t, err)
		_, err = svc.StopTimer(ctx, member.ID, started.ID)
		require.NoError(t, err)

		_, err = svc.StopTimer(ctx, member.ID, started.ID)
		require.ErrorIs(t, err, ErrNotRunning)
	})

	t.Run("unknown entry reports not found", func(t *testing.T) {
		_, err := svc.StopTimer(ctx, member.ID, "01JUNKENTRY00000000000000")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("another user's entry reports not found, even for admins", func(t *testing.T) {
		started, err := svc.StartTimer(ctx, member.ID, project.ID, "work")
		require.NoError(t, err)

		_, err = svc.StopTimer(ctx, admin.ID, started.ID)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = svc.StopTimer(ctx, member.ID, started.ID)
		require.NoError(t, err)
	})
}

func TestCreateManualEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", domain.RoleAdmin, domain.RoleMember)
	member := seedUser(t, st, "member@example.com", domain.RoleMember)
	project := seedProject(t, st, "Platform", admin.ID)

	svc := &TimeEntryService{Store: st}
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	t.Run("derives a rounded duration", func(t *testing.T) {
		entry, err := svc.CreateManualEntry(ctx, member.ID, project.ID, "retro", start, start.Add(91*time.Minute+40*time.Second))
		require.NoError(t, err)
		require.False(t, entry.IsRunning)
		require.NotNil(t, entry.DurationMinutes)
		require.Equal(t, int64(92), *entry.DurationMinutes)
	})

	t.Run("sub-minute entries round toward zero or one", func(t *testing.T) {
		entry, err := svc.CreateManualEntry(ctx, member.ID, project.ID, "blip", start, start.Add(20*time.Second))
		require.NoError(t, err)
		require.Equal(t, int64(0), *entry.DurationMinutes)

		entry, err = svc.CreateManualEntry(ctx, member.ID, project.ID, "blip", start, start.Add(45*time.Second))
		require.NoError(t, err)
		require.Equal(t, int64(1), *entry.DurationMinutes)
	})

	t.Run("rejects end equal to start", func(t *testing.T) {
		_, err := svc.CreateManualEntry(ctx, member.ID, project.ID, "zero", start, start)
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := svc.CreateManualEntry(ctx, member.ID, project.ID, "backwards", start, start.Add(-time.Minute))
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("does not collide with a running timer", func(t *testing.T) {
		started, err := svc.StartTimer(ctx, member.ID, project.ID, "live")
		require.NoError(t, err)

		_, err = svc.CreateManualEntry(ctx, member.ID, project.ID, "retro", start, start.Add(time.Hour))
		require.NoError(t, err)

		_, err = svc.StopTimer(ctx, member.ID, started.ID)
		require.NoError(t, err)
	})
}

func TestListEntriesScoping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", domain.RoleAdmin, domain.RoleMember)
	alice := seedUser(t, st, "alice@example.com", domain.RoleMember)
	bob := seedUser(t, st, "bob@example.com", domain.RoleMember)
	project := seedProject(t, st, "Platform", admin.ID)

	svc := &TimeEntryService{Store: st}
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	_, err := svc.CreateManualEntry(ctx, alice.ID, project.ID, "alice work", start, start.Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.CreateManualEntry(ctx, bob.ID, project.ID, "bob work", start, start.Add(2*time.Hour))
	require.NoError(t, err)

	t.Run("members only see their own entries regardless of filters", func(t *testing.T) {
		entries, err := svc.ListEntries(ctx, alice.ID, store.TimeEntryFilter{UserID: bob.ID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, alice.ID, entries[0].UserID)
	})

	t.Run("admins may filter across users", func(t *testing.T) {
		entries, err := svc.ListEntries(ctx, admin.ID, store.TimeEntryFilter{UserID: bob.ID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, bob.ID, entries[0].UserID)

		all, err := svc.ListEntries(ctx, admin.ID, store.TimeEntryFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("day filter matches the UTC calendar day", func(t *testing.T) {
		day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
		entries, err := svc.ListEntries(ctx, admin.ID, store.TimeEntryFilter{Day: &day})
		require.NoError(t, err)
		require.Len(t, entries, 2)

		other := day.AddDate(0, 0, 1)
		entries, err = svc.ListEntries(ctx, admin.ID, store.TimeEntryFilter{Day: &other})
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}

// TestTimerLifecycleScenario walks the full flow: provisioning, assignment,
// a timer round-trip with a blocked second start, and deactivation leaving
// history readable.
func TestTimerLifecycleScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	admin := seedUser(t, st, "admin@example.com", domain.RoleAdmin, domain.RoleMember)

	users := &UserService{Store: st}
	projects := &ProjectService{Store: st}
	timers := &TimeEntryService{Store: st}

	member, err := users.CreateUser(ctx, admin.ID, "worker@example.com", "Wren", "Okafor")
	require.NoError(t, err)

	project, err := projects.CreateProject(ctx, admin.ID, "Migration", "db cutover")
	require.NoError(t, err)
	_, err = projects.AssignUser(ctx, admin.ID, project.ID, member.ID)
	require.NoError(t, err)

	entry, err := timers.StartTimer(ctx, member.ID, project.ID, "cutover prep")
	require.NoError(t, err)

	_, err = timers.StartTimer(ctx, member.ID, project.ID, "impatient retry")
	require.ErrorIs(t, err, ErrTimerRunning)

	stopped, err := timers.StopTimer(ctx, member.ID, entry.ID)
	require.NoError(t, err)
	require.False(t, stopped.IsRunning)
	require.GreaterOrEqual(t, *stopped.DurationMinutes, int64(0))

	deactivated, err := projects.ToggleActive(ctx, admin.ID, project.ID)
	require.NoError(t, err)
	require.False(t, deactivated.IsActive)

	// History stays readable for both the owner and the admin.
	mine, err := timers.ListEntries(ctx, member.ID, store.TimeEntryFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := timers.ListEntries(ctx, admin.ID, store.TimeEntryFilter{UserID: member.ID})
	require.NoError(t, err)
	require.Len(t, all, 1)
}
