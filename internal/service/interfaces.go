package service

import (
	"scrim-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	SyncLogin(profile *LoginProfile) (*models.User, error)
	UpdateRole(id string, req *UpdateRoleRequest) (*models.User, error)
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	Register(captainID string, req *RegisterTeamRequest) (*models.Team, error)
	GetApproved() ([]models.Team, error)
	GetBlocked() ([]models.Team, error)
	GetVIP() ([]models.Team, error)
	GetMine(captainID string) (*models.Team, error)
	GetAll(status string) ([]models.Team, error)
	GetByID(id uuid.UUID) (*models.Team, error)
	Update(id uuid.UUID, req *UpdateTeamRequest) (*models.Team, error)
	Delete(id uuid.UUID) error
}

// ScheduleServiceInterface defines the interface for schedule service
type ScheduleServiceInterface interface {
	Create(req *CreateScheduleRequest) (*models.Schedule, error)
	GetAll() ([]models.Schedule, error)
	GetByID(id uuid.UUID) (*models.Schedule, error)
	Update(id uuid.UUID, req *UpdateScheduleRequest) (*models.Schedule, error)
}

// ResultServiceInterface defines the interface for result service
type ResultServiceInterface interface {
	Create(req *CreateResultRequest) (*models.Result, error)
	GetAll(scheduleID *uuid.UUID) ([]models.Result, error)
	GetByID(id uuid.UUID) (*models.Result, error)
}

var (
	_ UserServiceInterface     = (*UserService)(nil)
	_ TeamServiceInterface     = (*TeamService)(nil)
	_ ScheduleServiceInterface = (*ScheduleService)(nil)
	_ ResultServiceInterface   = (*ResultService)(nil)
)
