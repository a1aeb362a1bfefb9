package repository

import (
	"scrim-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultRepository handles database operations for match results
type ResultRepository struct {
	db *gorm.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create creates a new result
func (r *ResultRepository) Create(result *models.Result) error {
	return r.db.Create(result).Error
}

// GetByID retrieves a result by ID
func (r *ResultRepository) GetByID(id uuid.UUID) (*models.Result, error) {
	var result models.Result
	err := r.db.First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAll retrieves all results
func (r *ResultRepository) GetAll() ([]models.Result, error) {
	var results []models.Result
	if err := r.db.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByScheduleID retrieves the results published for a schedule
func (r *ResultRepository) GetByScheduleID(scheduleID uuid.UUID) ([]models.Result, error) {
	var results []models.Result
	err := r.db.Where("schedule_id = ?", scheduleID).Order("created_at ASC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
