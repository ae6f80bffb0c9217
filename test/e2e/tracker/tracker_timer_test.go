package tracker_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harsh-khulbe03/Minutron/pkg/trackersdk"
)

// TestTimerLifecycle walks the full tracking flow: an admin provisions a
// project and a member, the member runs a timer against it, a second timer
// is refused while the first runs, and stopping frees the slot again.
func TestTimerLifecycle(t *testing.T) {
	baseURL, cleanup := setupTrackerContainer(t)
	defer cleanup()

	admin, _ := bootstrapService(t, baseURL)
	member, memberID := provisionMember(t, baseURL, admin, "worker@example.com")

	project, err := admin.CreateProject(t.Context(), trackersdk.CreateProjectRequest{
		Name:        "Platform",
		Description: "Core platform work",
	})
	require.NoError(t, err)
	require.True(t, project.IsActive)

	other, err := admin.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Website"})
	require.NoError(t, err)

	_, err = admin.AssignUser(t.Context(), project.ID, memberID)
	require.NoError(t, err)

	// Start a timer.
	running, err := member.StartTimer(t.Context(), trackersdk.StartTimerRequest{
		ProjectID:   project.ID,
		Description: "morning standup prep",
	})
	require.NoError(t, err)
	require.True(t, running.IsRunning)
	require.Nil(t, running.EndTime)
	require.Equal(t, memberID, running.UserID)

	// A second timer must be refused while one runs, even on another project.
	_, err = member.StartTimer(t.Context(), trackersdk.StartTimerRequest{ProjectID: other.ID})
	assertAPIError(t, err, http.StatusConflict, "Second concurrent timer should be refused")

	// Stop it.
	stopped, err := member.StopTimer(t.Context(), running.ID)
	require.NoError(t, err)
	require.False(t, stopped.IsRunning)
	require.NotNil(t, stopped.EndTime)
	require.NotNil(t, stopped.DurationMinutes)

	// Stopping twice is a conflict.
	_, err = member.StopTimer(t.Context(), running.ID)
	assertAPIError(t, err, http.StatusConflict, "Stopping a finished entry should be refused")

	// The slot is free again.
	second, err := member.StartTimer(t.Context(), trackersdk.StartTimerRequest{ProjectID: other.ID})
	require.NoError(t, err)
	_, err = member.StopTimer(t.Context(), second.ID)
	require.NoError(t, err)

	entries, err := member.ListEntries(t.Context(), trackersdk.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

// TestManualEntry verifies backfilled entries and range validation.
func TestManualEntry(t *testing.T) {
	baseURL, cleanup := setupTrackerContainer(t)
	defer cleanup()

	admin, _ := bootstrapService(t, baseURL)
	member, _ := provisionMember(t, baseURL, admin, "backfill@example.com")

	project, err := admin.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Support"})
	require.NoError(t, err)

	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	entry, err := member.CreateManualEntry(t.Context(), trackersdk.ManualEntryRequest{
		ProjectID:   project.ID,
		Description: "yesterday's incident call",
		StartTime:   start,
		EndTime:     start.Add(90 * time.Minute),
	})
	require.NoError(t, err)
	require.False(t, entry.IsRunning)
	require.NotNil(t, entry.DurationMinutes)
	require.Equal(t, int64(90), *entry.DurationMinutes)

	// End before start is rejected.
	_, err = member.CreateManualEntry(t.Context(), trackersdk.ManualEntryRequest{
		ProjectID: project.ID,
		StartTime: start,
		EndTime:   start.Add(-time.Minute),
	})
	assertAPIError(t, err, http.StatusBadRequest, "Inverted range should be rejected")

	// Unknown project is a 404.
	_, err = member.CreateManualEntry(t.Context(), trackersdk.ManualEntryRequest{
		ProjectID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assertAPIError(t, err, http.StatusNotFound, "Unknown project should 404")
}

// TestStopForeignTimer verifies that timers can only be stopped by their owner.
func TestStopForeignTimer(t *testing.T) {
	baseURL, cleanup := setupTrackerContainer(t)
	defer cleanup()

	admin, _ := bootstrapService(t, baseURL)
	member, _ := provisionMember(t, baseURL, admin, "owner@example.com")
	intruder, _ := provisionMember(t, baseURL, admin, "intruder@example.com")

	project, err := admin.CreateProject(t.Context(), trackersdk.CreateProjectRequest{Name: "Ops"})
	require.NoError(t, err)

	running, err := member.StartTimer(t.Context(), trackersdk.StartTimerRequest{ProjectID: project.ID})
	require.NoError(t, err)

	// Another member cannot stop it, and cannot learn it exists.
	_, err = intruder.StopTimer(t.Context(), running.ID)
	assertAPIError(t, err, http.StatusNotFound, "Foreign stop should look like a missing entry")

	// Neither can an admin. Timers belong to the person on the clock.
	_, err = admin.StopTimer(t.Context(), running.ID)
	assertAPIError(t, err, http.StatusNotFound, "Admin stop of a foreign timer should be refused")

	_, err = member.StopTimer(t.Context(), running.ID)
	require.NoError(t, err)
}
