package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
)

type timeEntriesRepo struct {
	db dbtx
}

const timeEntryColumns = `id, user_id, project_id, description, start_time,
	end_time, duration_minutes, is_running, created_at, updated_at`

func scanTimeEntry(row interface{ Scan(...any) error }) (domain.TimeEntry, error) {
	var (
		e        domain.TimeEntry
		endTime  sql.NullTime
		duration sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.Description, &e.StartTime,
		&endTime, &duration, &e.IsRunning, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	e.EndTime = mapNullTimePtr(endTime)
	e.DurationMinutes = mapNullInt64Ptr(duration)
	return e, nil
}

func (r *timeEntriesRepo) Create(ctx context.Context, e domain.TimeEntry) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries
		 (id, user_id, project_id, description, start_time, end_time,
		  duration_minutes, is_running, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.ProjectID, e.Description, e.StartTime,
		mapOptionalTime(e.EndTime), mapOptionalInt64(e.DurationMinutes),
		e.IsRunning, now, now)
	return mapConstraint(err)
}

func (r *timeEntriesRepo) GetByID(ctx context.Context, id string) (domain.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE id = ?`, id)
	e, err := scanTimeEntry(row)
	if err != nil {
		return domain.TimeEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *timeEntriesRepo) GetRunningForUser(ctx context.Context, userID string) (domain.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries
		 WHERE user_id = ? AND is_running = 1`, userID)
	e, err := scanTimeEntry(row)
	if err != nil {
		return domain.TimeEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *timeEntriesRepo) Stop(ctx context.Context, id string, endTime time.Time, durationMinutes int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE time_entries
		 SET end_time = ?, duration_minutes = ?, is_running = 0, updated_at = ?
		 WHERE id = ? AND is_running = 1`,
		endTime, durationMinutes, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *timeEntriesRepo) List(ctx context.Context, f store.TimeEntryFilter) ([]domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE 1=1`
	var args []any

	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.Day != nil {
		dayStart := f.Day.UTC().Truncate(24 * time.Hour)
		query += ` AND start_time >= ? AND start_time < ?`
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}
	query += ` ORDER BY start_time DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
