package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
)

type rolesRepo struct {
	db dbtx
}

func (r *rolesRepo) ListForUser(ctx context.Context, userID string) (domain.RoleSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role FROM role_grants WHERE user_id = ? ORDER BY role ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var set domain.RoleSet
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		set = append(set, role)
	}
	return set, rows.Err()
}

func (r *rolesRepo) Grant(ctx context.Context, userID string, role domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO role_grants (user_id, role, created_at) VALUES (?, ?, ?)`,
		userID, role, time.Now().UTC())
	return mapConstraint(err)
}

func (r *rolesRepo) Revoke(ctx context.Context, userID string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM role_grants WHERE user_id = ? AND role = ?`, userID, role)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
