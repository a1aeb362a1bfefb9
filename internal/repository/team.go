package repository

import (
	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const captainIndex = "idx_teams_captain_id"

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team. A second team for the same captain fails with ErrDuplicateTeam.
func (r *TeamRepository) Create(team *models.Team) error {
	err := r.db.Create(team).Error
	if isUniqueViolation(err, captainIndex) {
		return apperrors.ErrDuplicateTeam
	}
	return err
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByCaptainID retrieves the team owned by a user
func (r *TeamRepository) GetByCaptainID(captainID string) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "captain_id = ?", captainID).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetAll retrieves every team regardless of status
func (r *TeamRepository) GetAll() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// GetByStatus retrieves teams in the given status
func (r *TeamRepository) GetByStatus(status models.TeamStatus) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetVIP retrieves approved teams flagged as VIP
func (r *TeamRepository) GetVIP() ([]models.Team, error) {
	var teams []models.Team
	err := r.db.Where("status = ? AND is_vip = ?", models.TeamStatusApproved, true).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// Update applies a partial update keyed by column name
func (r *TeamRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Team{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete deletes a team; deleting a missing team is not an error
func (r *TeamRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Team{}, "id = ?", id).Error
}
