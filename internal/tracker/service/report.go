package service

import (
	"context"
	"sort"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
)

// ReportService is the read-only rollup side. It reuses the list scoping
// of TimeEntryService, so a member's report only ever covers their own
// entries, and recomputes on every call without caching.
type ReportService struct {
	Store store.Store
}

// SummaryRow is one (user, project) cell of the rollup.
type SummaryRow struct {
	UserID  string
	User    string // display name
	Project string
	Hours   float64
}

// NameHours is a per-user or per-project total.
type NameHours struct {
	Name  string
	Hours float64
}

type Summary struct {
	Rows          []SummaryRow
	UserTotals    []NameHours
	ProjectTotals []NameHours
	TotalHours    float64
}

// Summarize aggregates the actor's visible entries grouped by user and by
// project. Running entries have no duration yet and contribute zero.
func (s *ReportService) Summarize(
	ctx context.Context,
	actorID string,
	filter store.TimeEntryFilter,
) (Summary, error) {
	entries := TimeEntryService{Store: s.Store}
	visible, err := entries.ListEntries(ctx, actorID, filter)
	if err != nil {
		return Summary{}, err
	}

	users, err := s.displayNames(ctx, visible)
	if err != nil {
		return Summary{}, err
	}
	projects, err := s.projectNames(ctx, visible)
	if err != nil {
		return Summary{}, err
	}

	return Aggregate(visible, users, projects), nil
}

// Aggregate is the pure rollup over an already-authorized entry set.
// Split out so it can be tested without a store.
func Aggregate(
	entries []domain.TimeEntry,
	displayNames map[string]string,
	projectNames map[string]string,
) Summary {
	type cell struct{ userID, projectID string }

	cells := make(map[cell]float64)
	userTotals := make(map[string]float64)
	projectTotals := make(map[string]float64)
	var total float64

	for _, e := range entries {
		hours := float64(e.Minutes()) / 60
		cells[cell{e.UserID, e.ProjectID}] += hours
		userTotals[e.UserID] += hours
		projectTotals[e.ProjectID] += hours
		total += hours
	}

	summary := Summary{TotalHours: total}

	for c, hours := range cells {
		summary.Rows = append(summary.Rows, SummaryRow{
			UserID:  c.userID,
			User:    displayNames[c.userID],
			Project: projectNames[c.projectID],
			Hours:   hours,
		})
	}
	sort.Slice(summary.Rows, func(i, j int) bool {
		if summary.Rows[i].User != summary.Rows[j].User {
			return summary.Rows[i].User < summary.Rows[j].User
		}
		return summary.Rows[i].Project < summary.Rows[j].Project
	})

	for id, hours := range userTotals {
		summary.UserTotals = append(summary.UserTotals, NameHours{Name: displayNames[id], Hours: hours})
	}
	for id, hours := range projectTotals {
		summary.ProjectTotals = append(summary.ProjectTotals, NameHours{Name: projectNames[id], Hours: hours})
	}
	sort.Slice(summary.UserTotals, func(i, j int) bool {
		return summary.UserTotals[i].Name < summary.UserTotals[j].Name
	})
	sort.Slice(summary.ProjectTotals, func(i, j int) bool {
		return summary.ProjectTotals[i].Name < summary.ProjectTotals[j].Name
	})

	return summary
}

func (s *ReportService) displayNames(ctx context.Context, entries []domain.TimeEntry) (map[string]string, error) {
	names := make(map[string]string)
	for _, e := range entries {
		if _, ok := names[e.UserID]; ok {
			continue
		}
		u, err := s.Store.Users().GetUserByID(ctx, e.UserID)
		if err != nil {
			return nil, err
		}
		names[e.UserID] = u.DisplayName()
	}
	return names, nil
}

func (s *ReportService) projectNames(ctx context.Context, entries []domain.TimeEntry) (map[string]string, error) {
	names := make(map[string]string)
	for _, e := range entries {
		if _, ok := names[e.ProjectID]; ok {
			continue
		}
		p, err := s.Store.Projects().GetProjectByID(ctx, e.ProjectID)
		if err != nil {
			return nil, err
		}
		names[e.ProjectID] = p.Name
	}
	return names, nil
}
