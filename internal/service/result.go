package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultService handles business logic for published match results
type ResultService struct {
	repo         repository.ResultRepositoryInterface
	scheduleRepo repository.ScheduleRepositoryInterface
	validator    *validator.Validate
	now          func() time.Time
}

// NewResultService creates a new result service
func NewResultService(repo repository.ResultRepositoryInterface, scheduleRepo repository.ScheduleRepositoryInterface, validator *validator.Validate) *ResultService {
	return &ResultService{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		validator:    validator,
		now:          time.Now,
	}
}

// CreateResultRequest represents the request to publish a result
type CreateResultRequest struct {
	ScheduleID  *uuid.UUID `json:"scheduleId,omitempty" swaggertype:"string" format:"uuid"`
	Title       string     `json:"title" validate:"required,max=200" example:"Week 1 Results"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty" validate:"omitempty,max=1000"`
	Date        *time.Time `json:"date,omitempty"`
}

// Create publishes a result. Date defaults to now; a referenced schedule must exist.
func (s *ResultService) Create(req *CreateResultRequest) (*models.Result, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	if req.ScheduleID != nil {
		if _, err := s.scheduleRepo.GetByID(*req.ScheduleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewValidationError("scheduleId", "schedule does not exist")
			}
			return nil, fmt.Errorf("failed to verify schedule: %w", err)
		}
	}

	result := &models.Result{
		ScheduleID:  req.ScheduleID,
		Title:       req.Title,
		Description: blankToNil(req.Description),
		ImageURL:    blankToNil(req.ImageURL),
		Date:        s.now().UTC(),
	}
	if req.Date != nil {
		result.Date = *req.Date
	}

	if err := s.repo.Create(result); err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}
	return result, nil
}

// GetAll returns every result, or only those of one schedule when scheduleID is set
func (s *ResultService) GetAll(scheduleID *uuid.UUID) ([]models.Result, error) {
	var (
		results []models.Result
		err     error
	)
	if scheduleID != nil {
		results, err = s.repo.GetByScheduleID(*scheduleID)
	} else {
		results, err = s.repo.GetAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	if results == nil {
		results = []models.Result{}
	}
	return results, nil
}

// GetByID retrieves a result by ID
func (s *ResultService) GetByID(id uuid.UUID) (*models.Result, error) {
	result, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return result, nil
}

// blankToNil stores empty optional strings as NULL; the admin form sends "" for untouched fields
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
