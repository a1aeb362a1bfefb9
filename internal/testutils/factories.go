package testutils

import (
	"fmt"
	"time"

	"scrim-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique id and email
func (f *UserFactory) Create() *models.User {
	suffix := uuid.New().String()[:8]
	email := fmt.Sprintf("player-%s@test.com", suffix)
	first := "Test"
	last := "Player"

	return &models.User{
		ID:        "github:" + suffix,
		Email:     &email,
		FirstName: &first,
		LastName:  &last,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Admin creates a test User holding the admin role
func (f *UserFactory) Admin() *models.User {
	user := f.Create()
	user.Role = models.RoleAdmin
	return user
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a pending test Team with a random captain id
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:      "Team Alpha",
		Tag:       "ALPH",
		CaptainID: "github:" + uuid.New().String()[:8],
		Player1:   "Alice",
		Player2:   "Bob",
		Player3:   "Cara",
		Player4:   "Dan",
		Status:    models.TeamStatusPending,
		UpdatedAt: time.Now(),
	}
}

// WithCaptain creates a test Team owned by the given user
func (f *TeamFactory) WithCaptain(captainID string) *models.Team {
	team := f.Create()
	team.CaptainID = captainID
	return team
}

// WithStatus creates a test Team owned by captainID in the given status
func (f *TeamFactory) WithStatus(captainID string, status models.TeamStatus) *models.Team {
	team := f.WithCaptain(captainID)
	team.Status = status
	return team
}

// ScheduleFactory provides methods to create test Schedule data
type ScheduleFactory struct{}

// NewScheduleFactory creates a new ScheduleFactory
func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{}
}

// Create creates an upcoming test Schedule one week out
func (f *ScheduleFactory) Create() *models.Schedule {
	return &models.Schedule{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:    "Friday Scrims",
		Date:     time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second),
		MaxTeams: models.DefaultMaxTeams,
		Status:   models.ScheduleStatusUpcoming,
	}
}

// WithStatus creates a test Schedule in the given status
func (f *ScheduleFactory) WithStatus(status models.ScheduleStatus) *models.Schedule {
	schedule := f.Create()
	schedule.Status = status
	return schedule
}

// ResultFactory provides methods to create test Result data
type ResultFactory struct{}

// NewResultFactory creates a new ResultFactory
func NewResultFactory() *ResultFactory {
	return &ResultFactory{}
}

// Create creates a test Result not tied to any schedule
func (f *ResultFactory) Create() *models.Result {
	return &models.Result{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title: "Week 1 Results",
		Date:  time.Now().UTC().Truncate(time.Second),
	}
}

// WithSchedule creates a test Result published for a schedule
func (f *ResultFactory) WithSchedule(scheduleID uuid.UUID) *models.Result {
	result := f.Create()
	result.ScheduleID = &scheduleID
	return result
}

// FactorySet contains all factories for easy access
type FactorySet struct {
	User     *UserFactory
	Team     *TeamFactory
	Schedule *ScheduleFactory
	Result   *ResultFactory
}

// NewFactorySet creates a new set of all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:     NewUserFactory(),
		Team:     NewTeamFactory(),
		Schedule: NewScheduleFactory(),
		Result:   NewResultFactory(),
	}
}
