package repository

import (
	"scrim-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleRepository handles database operations for schedules
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create creates a new schedule
func (r *ScheduleRepository) Create(schedule *models.Schedule) error {
	return r.db.Create(schedule).Error
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(id uuid.UUID) (*models.Schedule, error) {
	var schedule models.Schedule
	err := r.db.First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// GetAll retrieves all schedules
func (r *ScheduleRepository) GetAll() ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.db.Order("created_at ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update applies a partial update keyed by column name
func (r *ScheduleRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Schedule{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
