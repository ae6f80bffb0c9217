package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationBetween(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int64
	}{
		{"exact hour", start.Add(time.Hour), 60},
		{"rounds down below half a minute", start.Add(10*time.Minute + 20*time.Second), 10},
		{"rounds up from half a minute", start.Add(10*time.Minute + 30*time.Second), 11},
		{"one second is zero minutes", start.Add(time.Second), 0},
		{"long sessions stay exact", start.Add(31 * 24 * time.Hour), 31 * 24 * 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DurationBetween(start, tc.end))
		})
	}
}

func TestMinutes(t *testing.T) {
	t.Parallel()

	mins := int64(42)
	stopped := TimeEntry{DurationMinutes: &mins}
	require.Equal(t, int64(42), stopped.Minutes())

	running := TimeEntry{IsRunning: true}
	require.Equal(t, int64(0), running.Minutes())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace", Email: "a@b.c"}.DisplayName())
	require.Equal(t, "Ada", User{FirstName: "Ada", Email: "a@b.c"}.DisplayName())
	require.Equal(t, "a@b.c", User{Email: "a@b.c"}.DisplayName())
}
