package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/authz"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/pkg/idx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"
)

type ProjectService struct {
	Store store.Store
}

// CreateProject creates a new active project. Admin only; created_by is
// always the acting admin.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	actorID string,
	name string,
	description string,
) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if strings.TrimSpace(name) == "" {
		return domain.Project{}, ErrEmptyName
	}

	// 2. Authorization: only admins pass project create.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpCreate, authz.Resource{
		Kind:    authz.KindProject,
		OwnerID: actorID,
	}); err != nil {
		return domain.Project{}, err
	}

	// 3. Insert.
	project := domain.Project{
		ID:          idx.New().String(),
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedBy:   actorID,
		IsActive:    true,
	}

	if err := s.Store.Projects().CreateProject(ctx, project); err != nil {
		log.Error("failed to create project", slog.Any("error", err))
		return domain.Project{}, err
	}

	log.Info("project created",
		slog.String("project_id", project.ID),
		slog.String("created_by", actorID),
	)

	return project, nil
}

// ToggleActive flips a project's active flag. Deactivation does not
// cascade: existing assignments and time entries stay untouched.
func (s *ProjectService) ToggleActive(
	ctx context.Context,
	actorID string,
	projectID string,
) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorization: project update is admin only.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpUpdate, authz.Resource{
		Kind:      authz.KindProject,
		ProjectID: projectID,
	}); err != nil {
		return domain.Project{}, err
	}

	// 2. Read-then-flip inside a transaction so two toggles cannot both
	// observe the same starting state.
	var project domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Projects().GetProjectByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := tx.Projects().SetActive(ctx, projectID, !p.IsActive); err != nil {
			return err
		}
		p.IsActive = !p.IsActive
		project = p
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrNotFound
		}
		log.Error("failed to toggle project", slog.Any("error", err))
		return domain.Project{}, err
	}

	log.Info("project active flag toggled",
		slog.String("project_id", projectID),
		slog.Bool("is_active", project.IsActive),
	)

	return project, nil
}

// AssignUser grants a user access to a project. A duplicate pair is
// rejected with a conflict rather than silently ignored.
func (s *ProjectService) AssignUser(
	ctx context.Context,
	actorID string,
	projectID string,
	userID string,
) (domain.Assignment, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorization: assignment create is admin only.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpCreate, authz.Resource{
		Kind:      authz.KindAssignment,
		OwnerID:   actorID,
		ProjectID: projectID,
	}); err != nil {
		return domain.Assignment{}, err
	}

	// 2. Both sides of the pair must exist.
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Assignment{}, ErrNotFound
		}
		return domain.Assignment{}, err
	}
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Assignment{}, ErrNotFound
		}
		return domain.Assignment{}, err
	}

	// 3. Insert; the composite primary key rejects duplicates.
	assignment := domain.Assignment{
		ProjectID:  projectID,
		UserID:     userID,
		AssignedBy: actorID,
	}

	if err := s.Store.Assignments().Create(ctx, assignment); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Assignment{}, ErrDuplicateAssignment
		}
		log.Error("failed to create assignment", slog.Any("error", err))
		return domain.Assignment{}, err
	}

	log.Info("user assigned to project",
		slog.String("project_id", projectID),
		slog.String("user_id", userID),
		slog.String("assigned_by", actorID),
	)

	return assignment, nil
}

// UnassignUser revokes project access by deleting the assignment. Time
// entries the user already logged on the project remain theirs.
func (s *ProjectService) UnassignUser(
	ctx context.Context,
	actorID string,
	projectID string,
	userID string,
) error {
	log := slogx.FromContext(ctx)

	if _, err := authorize(ctx, s.Store, actorID, authz.OpDelete, authz.Resource{
		Kind:      authz.KindAssignment,
		ProjectID: projectID,
	}); err != nil {
		return err
	}

	if err := s.Store.Assignments().Delete(ctx, projectID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete assignment", slog.Any("error", err))
		return err
	}

	log.Info("user unassigned from project",
		slog.String("project_id", projectID),
		slog.String("user_id", userID),
	)

	return nil
}

// ListProjects returns every project for admins and only assigned
// projects for members.
func (s *ProjectService) ListProjects(ctx context.Context, actorID string) ([]domain.Project, error) {
	roles, err := s.Store.Roles().ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if roles.IsAdmin() {
		return s.Store.Projects().ListAll(ctx)
	}
	return s.Store.Projects().ListForUser(ctx, actorID)
}
