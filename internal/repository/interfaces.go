package repository

import (
	"scrim-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	Upsert(user *models.User) error
	UpdateRole(id string, role models.Role) error
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(team *models.Team) error
	GetByID(id uuid.UUID) (*models.Team, error)
	GetByCaptainID(captainID string) (*models.Team, error)
	GetAll() ([]models.Team, error)
	GetByStatus(status models.TeamStatus) ([]models.Team, error)
	GetVIP() ([]models.Team, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// ScheduleRepositoryInterface defines the interface for schedule repository operations
type ScheduleRepositoryInterface interface {
	Create(schedule *models.Schedule) error
	GetByID(id uuid.UUID) (*models.Schedule, error)
	GetAll() ([]models.Schedule, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
}

// ResultRepositoryInterface defines the interface for result repository operations
type ResultRepositoryInterface interface {
	Create(result *models.Result) error
	GetByID(id uuid.UUID) (*models.Result, error)
	GetAll() ([]models.Result, error)
	GetByScheduleID(scheduleID uuid.UUID) ([]models.Result, error)
}
