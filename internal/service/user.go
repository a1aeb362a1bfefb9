package service

import (
	"errors"
	"fmt"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/logger"
	"scrim-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// AdminEmailMatcher decides whether an email is bootstrapped to the admin role
type AdminEmailMatcher interface {
	IsAdminEmail(email string) bool
}

// UserService handles business logic for users
type UserService struct {
	repo      repository.UserRepositoryInterface
	admins    AdminEmailMatcher
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, admins AdminEmailMatcher, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		admins:    admins,
		validator: validator,
	}
}

// LoginProfile is the identity returned by the login provider
type LoginProfile struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
}

// UpdateRoleRequest represents the request to change a user's role
type UpdateRoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=user admin" example:"admin"`
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetAll returns every user in registration order
func (s *UserService) GetAll() ([]models.User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SyncLogin creates or refreshes the user behind a successful login.
// Profile fields are overwritten; the stored role is kept unless the email is a bootstrap admin.
func (s *UserService) SyncLogin(profile *LoginProfile) (*models.User, error) {
	if profile == nil || profile.ID == "" {
		return nil, apperrors.NewValidationError("id", "is required")
	}

	email, err := s.claimableEmail(profile)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:              profile.ID,
		Email:           email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		ProfileImageURL: profile.ProfileImageURL,
		Role:            models.RoleUser,
	}
	if err := s.repo.Upsert(user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	if email != nil && s.admins != nil && s.admins.IsAdminEmail(*email) {
		if err := s.repo.UpdateRole(profile.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to promote admin: %w", err)
		}
	}

	return s.GetByID(profile.ID)
}

// claimableEmail returns the login email unless another account already holds it.
// Emails are unique, so a conflicting one is dropped rather than failing the login.
func (s *UserService) claimableEmail(profile *LoginProfile) (*string, error) {
	if profile.Email == nil || *profile.Email == "" {
		return nil, nil
	}

	owner, err := s.repo.GetByEmail(*profile.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profile.Email, nil
		}
		return nil, fmt.Errorf("failed to check email owner: %w", err)
	}
	if owner.ID != profile.ID {
		logger.New().WithFields(map[string]interface{}{
			"user_id":  profile.ID,
			"owner_id": owner.ID,
		}).Warn("Login email already belongs to another account; not storing it")
		return nil, nil
	}
	return profile.Email, nil
}

// UpdateRole changes the role of a user
func (s *UserService) UpdateRole(id string, req *UpdateRoleRequest) (*models.User, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(id, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.GetByID(id)
}
