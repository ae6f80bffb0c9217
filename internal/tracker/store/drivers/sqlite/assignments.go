package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
)

type assignmentsRepo struct {
	db dbtx
}

func (r *assignmentsRepo) Create(ctx context.Context, a domain.Assignment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assignments (project_id, user_id, assigned_by, created_at)
		 VALUES (?, ?, ?, ?)`,
		a.ProjectID, a.UserID, a.AssignedBy, time.Now().UTC())
	return mapConstraint(err)
}

func (r *assignmentsRepo) Delete(ctx context.Context, projectID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assignments WHERE project_id = ? AND user_id = ?`, projectID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *assignmentsRepo) Exists(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assignments WHERE project_id = ? AND user_id = ?`,
		projectID, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assignmentsRepo) ListForProject(ctx context.Context, projectID string) ([]domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, user_id, assigned_by, created_at
		 FROM assignments WHERE project_id = ?
		 ORDER BY created_at ASC, user_id ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ProjectID, &a.UserID, &a.AssignedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
