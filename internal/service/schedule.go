package service

import (
	"errors"
	"fmt"
	"time"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleService handles business logic for scrim schedules
type ScheduleService struct {
	repo      repository.ScheduleRepositoryInterface
	validator *validator.Validate
}

// NewScheduleService creates a new schedule service
func NewScheduleService(repo repository.ScheduleRepositoryInterface, validator *validator.Validate) *ScheduleService {
	return &ScheduleService{
		repo:      repo,
		validator: validator,
	}
}

// CreateScheduleRequest represents the request to publish a schedule
type CreateScheduleRequest struct {
	Title       string                 `json:"title" validate:"required,max=200" example:"Friday Scrims"`
	Description *string                `json:"description,omitempty"`
	Date        time.Time              `json:"date" validate:"required" example:"2026-11-20T19:00:00Z"`
	MaxTeams    *int                   `json:"maxTeams,omitempty" validate:"omitempty,min=1" example:"16"`
	Status      *models.ScheduleStatus `json:"status,omitempty" validate:"omitempty,oneof=upcoming active completed cancelled" example:"upcoming"`
}

// UpdateScheduleRequest represents a partial schedule update
type UpdateScheduleRequest struct {
	Title       *string                `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string                `json:"description,omitempty"`
	Date        *time.Time             `json:"date,omitempty"`
	MaxTeams    *int                   `json:"maxTeams,omitempty" validate:"omitempty,min=1"`
	Status      *models.ScheduleStatus `json:"status,omitempty" validate:"omitempty,oneof=upcoming active completed cancelled" example:"active"`
}

// Create publishes a new schedule
func (s *ScheduleService) Create(req *CreateScheduleRequest) (*models.Schedule, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		MaxTeams:    models.DefaultMaxTeams,
		Status:      models.ScheduleStatusUpcoming,
	}
	if req.MaxTeams != nil {
		schedule.MaxTeams = *req.MaxTeams
	}
	if req.Status != nil {
		schedule.Status = *req.Status
	}

	if err := s.repo.Create(schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

// GetAll returns every schedule
func (s *ScheduleService) GetAll() ([]models.Schedule, error) {
	schedules, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}

// GetByID retrieves a schedule by ID
func (s *ScheduleService) GetByID(id uuid.UUID) (*models.Schedule, error) {
	schedule, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return schedule, nil
}

// Update applies a partial update, including status transitions
func (s *ScheduleService) Update(id uuid.UUID, req *UpdateScheduleRequest) (*models.Schedule, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.MaxTeams != nil {
		updates["max_teams"] = *req.MaxTeams
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return s.GetByID(id)
	}

	if err := s.repo.Update(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return s.GetByID(id)
}
