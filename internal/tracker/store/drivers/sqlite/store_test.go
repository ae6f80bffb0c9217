package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUserRow(t *testing.T, st *Store, email string) domain.User {
	t.Helper()
	u := domain.User{ID: idx.New().String(), Email: email}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedProjectRow(t *testing.T, st *Store, createdBy string) domain.Project {
	t.Helper()
	p := domain.Project{ID: idx.New().String(), Name: "p", CreatedBy: createdBy, IsActive: true}
	require.NoError(t, st.Projects().CreateProject(context.Background(), p))
	return p
}

func TestRunningTimerUniqueIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newStore(t)
	user := seedUserRow(t, st, "u@example.com")
	project := seedProjectRow(t, st, user.ID)

	running := domain.TimeEntry{
		ID:        idx.New().String(),
		UserID:    user.ID,
		ProjectID: project.ID,
		StartTime: time.Now().UTC(),
		IsRunning: true,
	}
	require.NoError(t, st.TimeEntries().Create(ctx, running))

	t.Run("second running row violates the partial index", func(t *testing.T) {
		dup := running
		dup.ID = idx.New().String()
		err := st.TimeEntries().Create(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("stopped rows are not constrained", func(t *testing.T) {
		end := time.Now().UTC()
		mins := int64(0)
		for range 3 {
			stopped := domain.TimeEntry{
				ID:              idx.New().String(),
				UserID:          user.ID,
				ProjectID:       project.ID,
				StartTime:       end.Add(-time.Minute),
				EndTime:         &end,
				DurationMinutes: &mins,
			}
			require.NoError(t, st.TimeEntries().Create(ctx, stopped))
		}
	})

	t.Run("stopping frees the slot", func(t *testing.T) {
		require.NoError(t, st.TimeEntries().Stop(ctx, running.ID, time.Now().UTC(), 1))

		next := running
		next.ID = idx.New().String()
		require.NoError(t, st.TimeEntries().Create(ctx, next))
	})
}

func TestStopGuardsOnRunning(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newStore(t)
	user := seedUserRow(t, st, "u@example.com")
	project := seedProjectRow(t, st, user.ID)

	entry := domain.TimeEntry{
		ID:        idx.New().String(),
		UserID:    user.ID,
		ProjectID: project.ID,
		StartTime: time.Now().UTC(),
		IsRunning: true,
	}
	require.NoError(t, st.TimeEntries().Create(ctx, entry))
	require.NoError(t, st.TimeEntries().Stop(ctx, entry.ID, time.Now().UTC(), 5))

	// A second stop matches no running row.
	err := st.TimeEntries().Stop(ctx, entry.ID, time.Now().UTC(), 5)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.TimeEntries().GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.False(t, got.IsRunning)
	require.NotNil(t, got.EndTime)
	require.Equal(t, int64(5), *got.DurationMinutes)
}

func TestConstraintMapping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newStore(t)
	user := seedUserRow(t, st, "u@example.com")
	project := seedProjectRow(t, st, user.ID)

	t.Run("duplicate email", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Email: "u@example.com"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate assignment pair", func(t *testing.T) {
		a := domain.Assignment{ProjectID: project.ID, UserID: user.ID, AssignedBy: user.ID}
		require.NoError(t, st.Assignments().Create(ctx, a))
		require.ErrorIs(t, st.Assignments().Create(ctx, a), store.ErrAlreadyExists)
	})

	t.Run("duplicate role grant", func(t *testing.T) {
		require.NoError(t, st.Roles().Grant(ctx, user.ID, domain.RoleMember))
		require.ErrorIs(t, st.Roles().Grant(ctx, user.ID, domain.RoleMember), store.ErrAlreadyExists)
	})

	t.Run("missing rows map to not found", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.TimeEntries().GetRunningForUser(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, st.Roles().Revoke(ctx, user.ID, domain.RoleAdmin), store.ErrNotFound)
		require.ErrorIs(t, st.Assignments().Delete(ctx, project.ID, idx.New().String()), store.ErrNotFound)
	})
}

func TestListDayWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newStore(t)
	user := seedUserRow(t, st, "u@example.com")
	project := seedProjectRow(t, st, user.ID)

	mins := int64(60)
	insertAt := func(start time.Time) {
		end := start.Add(time.Hour)
		require.NoError(t, st.TimeEntries().Create(ctx, domain.TimeEntry{
			ID:              idx.New().String(),
			UserID:          user.ID,
			ProjectID:       project.ID,
			StartTime:       start,
			EndTime:         &end,
			DurationMinutes: &mins,
		}))
	}

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	insertAt(day)                            // inclusive lower bound
	insertAt(day.Add(23*time.Hour + 59*time.Minute)) // last minute of the day
	insertAt(day.Add(24 * time.Hour))        // next day, excluded
	insertAt(day.Add(-time.Minute))          // previous day, excluded

	entries, err := st.TimeEntries().List(ctx, store.TimeEntryFilter{Day: &day})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, day.Format("2006-01-02"), e.StartTime.UTC().Format("2006-01-02"))
	}
}

func TestTransactionRollback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newStore(t)

	userID := idx.New().String()
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{ID: userID, Email: "tx@example.com"}); err != nil {
			return err
		}
		// Duplicate grant forces the whole transaction to roll back.
		if err := tx.Roles().Grant(ctx, userID, domain.RoleMember); err != nil {
			return err
		}
		return tx.Roles().Grant(ctx, userID, domain.RoleMember)
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, userID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
