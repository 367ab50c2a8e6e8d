package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealerhub/dealership-system/internal/core/access"
	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// UserService administers staff accounts of the caller's dealer.
type UserService struct {
	guard  *access.Guard
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(guard *access.Guard, users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{guard: guard, users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	scope, err := s.guard.Enter(ctx, access.OpUsersList)
	if err != nil {
		return nil, err
	}
	return s.users.List(ctx, scope.DealerID())
}

// Create adds a staff account to the caller's dealer.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	scope, err := s.guard.Enter(ctx, access.OpUsersCreate)
	if err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	fe := fieldErrors{}
	fe.required("name", in.Name)
	fe.email("email", in.Email, true)
	if len(in.Password) < minPasswordLen {
		fe.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if !in.Role.Valid() {
		fe.add("role", "must be one of admin, sales, service, viewer")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	// Emails are unique across dealers because login looks them up without a
	// tenant. A taken email reports the same error whichever dealer holds it.
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           newID(),
		DealerID:     scope.DealerID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("dealer_id", scope.DealerID()).Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// UpdateRole changes the role of another user of the same dealer.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	scope, err := s.guard.Enter(ctx, access.OpUsersUpdateRole)
	if err != nil {
		return err
	}
	if !role.Valid() {
		return domain.NewValidationError("role", "must be one of admin, sales, service, viewer")
	}
	if userID == scope.UserID() {
		return domain.NewValidationError("role", "you cannot change your own role")
	}

	if err := s.users.UpdateRole(ctx, scope.DealerID(), userID, role); err != nil {
		return err
	}
	s.logger.Info().
		Str("dealer_id", scope.DealerID()).
		Str("user_id", userID).
		Str("role", string(role)).
		Str("by", scope.UserID()).
		Msg("user role changed")
	return nil
}

// SetActive enables or disables a user of the same dealer. Administrators
// cannot deactivate themselves.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	scope, err := s.guard.Enter(ctx, access.OpUsersSetActive)
	if err != nil {
		return err
	}
	if !active && userID == scope.UserID() {
		return domain.NewValidationError("is_active", "you cannot deactivate your own account")
	}
	return s.users.SetActive(ctx, scope.DealerID(), userID, active)
}
