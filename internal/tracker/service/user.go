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

type UserService struct {
	Store store.Store
}

// CreateUser provisions an account with a default member grant. Admin
// only. The profile has no owner yet, so the resource descriptor carries
// no owner id; the policy engine still rejects non-admins.
func (s *UserService) CreateUser(
	ctx context.Context,
	actorID string,
	email string,
	firstName string,
	lastName string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, ErrInvalidEmail
	}

	// 2. Authorization.
	if _, err := authorize(ctx, s.Store, actorID, authz.OpCreate, authz.Resource{
		Kind: authz.KindProfile,
	}); err != nil {
		return domain.User{}, err
	}

	// 3. Create user and default grant atomically.
	user := domain.User{
		ID:        idx.New().String(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Roles().Grant(ctx, user.ID, domain.RoleMember)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to provision user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user provisioned",
		slog.String("user_id", user.ID),
		slog.String("created_by", actorID),
	)

	return user, nil
}

// Profile pairs a user with their current role grants.
type Profile struct {
	User  domain.User
	Roles domain.RoleSet
}

// GetProfile returns a profile readable by the actor: their own, or any
// when the actor is an admin. A denied read reports not-found.
func (s *UserService) GetProfile(ctx context.Context, actorID, userID string) (Profile, error) {
	if _, err := authorize(ctx, s.Store, actorID, authz.OpRead, authz.Resource{
		Kind:    authz.KindProfile,
		OwnerID: userID,
	}); err != nil {
		if errors.Is(err, authz.ErrDenied) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	roles, err := s.Store.Roles().ListForUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Roles: roles}, nil
}

// UpdateProfile sets the mutable name fields. Identity fields (id, email)
// are immutable.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	actorID string,
	userID string,
	firstName string,
	lastName string,
) (domain.User, error) {
	if _, err := authorize(ctx, s.Store, actorID, authz.OpUpdate, authz.Resource{
		Kind:    authz.KindProfile,
		OwnerID: userID,
	}); err != nil {
		if errors.Is(err, authz.ErrDenied) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateUserName(ctx, userID, firstName, lastName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns every profile with its role grants. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actorID string) ([]Profile, error) {
	if _, err := authorize(ctx, s.Store, actorID, authz.OpRead, authz.Resource{
		Kind: authz.KindProfile,
	}); err != nil {
		return nil, err
	}

	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, len(users))
	for i, u := range users {
		roles, err := s.Store.Roles().ListForUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		profiles[i] = Profile{User: u, Roles: roles}
	}
	return profiles, nil
}

// AddRoleGrant grants a role to a user. Admin only.
func (s *UserService) AddRoleGrant(
	ctx context.Context,
	actorID string,
	userID string,
	role domain.Role,
) error {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return ErrInvalidRole
	}

	if _, err := authorize(ctx, s.Store, actorID, authz.OpCreate, authz.Resource{
		Kind: authz.KindRoleGrant,
	}); err != nil {
		return err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.Store.Roles().Grant(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrDuplicateRoleGrant
		}
		log.Error("failed to grant role", slog.Any("error", err))
		return err
	}

	log.Info("role granted",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
		slog.String("granted_by", actorID),
	)

	return nil
}

// RemoveRoleGrant revokes a role from a user. Admin only.
func (s *UserService) RemoveRoleGrant(
	ctx context.Context,
	actorID string,
	userID string,
	role domain.Role,
) error {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return ErrInvalidRole
	}

	if _, err := authorize(ctx, s.Store, actorID, authz.OpDelete, authz.Resource{
		Kind: authz.KindRoleGrant,
	}); err != nil {
		return err
	}

	if err := s.Store.Roles().Revoke(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to revoke role", slog.Any("error", err))
		return err
	}

	log.Info("role revoked",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
		slog.String("revoked_by", actorID),
	)

	return nil
}
