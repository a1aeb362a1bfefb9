package service

import (
	"errors"
	"fmt"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService handles business logic for teams
type TeamService struct {
	repo      repository.TeamRepositoryInterface
	validator *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(repo repository.TeamRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{
		repo:      repo,
		validator: validator,
	}
}

// RegisterTeamRequest represents a captain's team registration.
// Status, VIP, slot and captain are server-assigned and have no field here.
type RegisterTeamRequest struct {
	Name           string  `json:"name" validate:"required,min=3,max=30" example:"Team Alpha"`
	Tag            string  `json:"tag" validate:"required,min=2,max=5" example:"ALPH"`
	Logo           *string `json:"logo,omitempty" validate:"omitempty,max=500"`
	Player1        string  `json:"player1" validate:"required,min=3,max=100" example:"Alice"`
	Player2        string  `json:"player2" validate:"required,min=3,max=100" example:"Bob"`
	Player3        string  `json:"player3" validate:"required,min=3,max=100" example:"Cara"`
	Player4        string  `json:"player4" validate:"required,min=3,max=100" example:"Dan"`
	DiscordContact *string `json:"discordContact,omitempty" validate:"omitempty,max=100"`
}

// UpdateTeamRequest represents an admin's partial team update; absent fields are left unchanged
type UpdateTeamRequest struct {
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=3,max=30"`
	Tag            *string            `json:"tag,omitempty" validate:"omitempty,min=2,max=5"`
	Logo           *string            `json:"logo,omitempty" validate:"omitempty,max=500"`
	Player1        *string            `json:"player1,omitempty" validate:"omitempty,min=3,max=100"`
	Player2        *string            `json:"player2,omitempty" validate:"omitempty,min=3,max=100"`
	Player3        *string            `json:"player3,omitempty" validate:"omitempty,min=3,max=100"`
	Player4        *string            `json:"player4,omitempty" validate:"omitempty,min=3,max=100"`
	DiscordContact *string            `json:"discordContact,omitempty" validate:"omitempty,max=100"`
	Status         *models.TeamStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected blocked" example:"approved"`
	IsVip          *bool              `json:"isVip,omitempty"`
	Slot           OptionalInt        `json:"slot" swaggertype:"integer" extensions:"x-nullable"`
}

// Register creates a pending team owned by captainID
func (s *TeamService) Register(captainID string, req *RegisterTeamRequest) (*models.Team, error) {
	if captainID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	existing, err := s.repo.GetByCaptainID(captainID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing team: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateTeam
	}

	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:           req.Name,
		Tag:            req.Tag,
		Logo:           req.Logo,
		CaptainID:      captainID,
		Player1:        req.Player1,
		Player2:        req.Player2,
		Player3:        req.Player3,
		Player4:        req.Player4,
		DiscordContact: req.DiscordContact,
		Status:         models.TeamStatusPending,
		IsVip:          false,
		Slot:           nil,
	}
	if err := s.repo.Create(team); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTeam) {
			return nil, apperrors.ErrDuplicateTeam
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// GetApproved returns the publicly listed teams
func (s *TeamService) GetApproved() ([]models.Team, error) {
	return s.listByStatus(models.TeamStatusApproved)
}

// GetBlocked returns blocked teams
func (s *TeamService) GetBlocked() ([]models.Team, error) {
	return s.listByStatus(models.TeamStatusBlocked)
}

// GetVIP returns approved teams flagged as VIP
func (s *TeamService) GetVIP() ([]models.Team, error) {
	teams, err := s.repo.GetVIP()
	if err != nil {
		return nil, fmt.Errorf("failed to get VIP teams: %w", err)
	}
	return nonNilTeams(teams), nil
}

// GetMine returns the team captained by the given user
func (s *TeamService) GetMine(captainID string) (*models.Team, error) {
	team, err := s.repo.GetByCaptainID(captainID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// GetAll returns every team, or only those in status when it is non-empty
func (s *TeamService) GetAll(status string) ([]models.Team, error) {
	if status == "" {
		teams, err := s.repo.GetAll()
		if err != nil {
			return nil, fmt.Errorf("failed to get teams: %w", err)
		}
		return nonNilTeams(teams), nil
	}

	teamStatus := models.TeamStatus(status)
	if !teamStatus.IsValid() {
		return nil, apperrors.NewValidationError("status", "must be one of: pending, approved, rejected, blocked")
	}
	return s.listByStatus(teamStatus)
}

// GetByID retrieves a team by ID
func (s *TeamService) GetByID(id uuid.UUID) (*models.Team, error) {
	team, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// Update applies an admin's partial update.
// A non-null slot must be positive and requires the resulting status to be approved.
func (s *TeamService) Update(id uuid.UUID, req *UpdateTeamRequest) (*models.Team, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	team, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	resultingStatus := team.Status
	if req.Status != nil {
		resultingStatus = *req.Status
	}
	if req.Slot.Set && req.Slot.Value != nil {
		if *req.Slot.Value < 1 {
			return nil, apperrors.NewValidationError("slot", "must be at least 1")
		}
		if resultingStatus != models.TeamStatusApproved {
			return nil, apperrors.NewValidationError("slot", "can only be assigned to an approved team")
		}
	}

	updates := teamUpdates(req)
	if len(updates) == 0 {
		return team, nil
	}

	if err := s.repo.Update(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return s.GetByID(id)
}

// Delete removes a team; a missing team is not an error
func (s *TeamService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (s *TeamService) listByStatus(status models.TeamStatus) ([]models.Team, error) {
	teams, err := s.repo.GetByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s teams: %w", status, err)
	}
	return nonNilTeams(teams), nil
}

func teamUpdates(req *UpdateTeamRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Tag != nil {
		updates["tag"] = *req.Tag
	}
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if req.Player1 != nil {
		updates["player1"] = *req.Player1
	}
	if req.Player2 != nil {
		updates["player2"] = *req.Player2
	}
	if req.Player3 != nil {
		updates["player3"] = *req.Player3
	}
	if req.Player4 != nil {
		updates["player4"] = *req.Player4
	}
	if req.DiscordContact != nil {
		updates["discord_contact"] = *req.DiscordContact
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IsVip != nil {
		updates["is_vip"] = *req.IsVip
	}
	if req.Slot.Set {
		if req.Slot.Value == nil {
			updates["slot"] = nil
		} else {
			updates["slot"] = *req.Slot.Value
		}
	}
	return updates
}

// nonNilTeams makes empty listings serialize as [] rather than null
func nonNilTeams(teams []models.Team) []models.Team {
	if teams == nil {
		return []models.Team{}
	}
	return teams
}
