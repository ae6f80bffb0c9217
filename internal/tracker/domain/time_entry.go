package domain

import (
	"math"
	"time"
)

// TimeEntry is a single work session against a project. While IsRunning is
// true the entry has no end time and no duration; both are set in the same
// write when the timer stops.
type TimeEntry struct {
	ID              string
	UserID          string
	ProjectID       string
	Description     string
	StartTime       time.Time
	EndTime         *time.Time // nil while running
	DurationMinutes *int64     // derived, nil while running
	IsRunning       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Minutes returns the entry's duration or zero for running entries, so
// report rollups can treat an in-progress session as contributing nothing
// until it stops.
func (e TimeEntry) Minutes() int64 {
	if e.DurationMinutes == nil {
		return 0
	}
	return *e.DurationMinutes
}

// DurationBetween computes a duration in whole minutes, rounding the
// seconds remainder. Kept here so the service and manual-entry paths share
// one definition.
func DurationBetween(start, end time.Time) int64 {
	return int64(math.Round(end.Sub(start).Minutes()))
}
