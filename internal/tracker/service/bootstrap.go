package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/harsh-khulbe03/Minutron/internal/tracker/domain"
	"github.com/harsh-khulbe03/Minutron/internal/tracker/store"
	"github.com/harsh-khulbe03/Minutron/pkg/idx"
	"github.com/harsh-khulbe03/Minutron/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService provisions the first administrator on an empty system.
// Only admins may provision users or grant roles, so the very first admin
// has to come from somewhere: a one-shot call guarded by a pre-configured
// token.
type BootstrapService struct {
	Store store.Store
	Token string // pre-configured bootstrap token
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the initial admin account with both role grants.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	email string,
	firstName string,
	lastName string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Refuse once any user exists.
	if bootstrapped, err := s.IsBootstrapped(ctx); err != nil {
		return domain.User{}, err
	} else if bootstrapped {
		log.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	// 2. Validate the provided token.
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		log.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, ErrInvalidEmail
	}

	// 3. Create user and grants atomically.
	admin := domain.User{
		ID:        idx.New().String(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, admin); err != nil {
			return err
		}
		if err := tx.Roles().Grant(ctx, admin.ID, domain.RoleAdmin); err != nil {
			return err
		}
		return tx.Roles().Grant(ctx, admin.ID, domain.RoleMember)
	})
	if err != nil {
		log.Error("bootstrap failed", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("system bootstrapped",
		slog.String("admin_user_id", admin.ID),
	)

	return admin, nil
}
