package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealbridge/internal/errors"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
)

// ProfilePatch carries a partial profile update. Nil fields keep the prior
// value. Email and role are immutable through this path.
type ProfilePatch struct {
	Name    *string
	Phone   *string
	Address *string
	City    *string
}

// UserService exposes user profile operations.
type UserService interface {
	GetProfile(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, id uuid.UUID, patch ProfilePatch) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func isSelfOrAdmin(viewerID uuid.UUID, viewerRole model.Role, id uuid.UUID) bool {
	return viewerID == id || viewerRole == model.RoleAdmin
}

// GetProfile returns a user profile. Contact details are blanked unless
// the viewer is the profile owner or an admin.
func (s *userService) GetProfile(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !isSelfOrAdmin(viewerID, viewerRole, id) {
		user.Email = ""
		user.Phone = ""
	}
	return user, nil
}

// UpdateProfile applies a partial update to the profile. Only the owner or
// an admin may update.
func (s *userService) UpdateProfile(ctx context.Context, viewerID uuid.UUID, viewerRole model.Role, id uuid.UUID, patch ProfilePatch) error {
	if !isSelfOrAdmin(viewerID, viewerRole, id) {
		return errors.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.City != nil {
		user.City = *patch.City
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
