//go:build integration
// +build integration

package repository

import (
	"sync"
	"testing"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	userRepo      *UserRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamRepositoryTestSuite) createCaptain() *models.User {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.userRepo.Upsert(user))
	return user
}

func (suite *TeamRepositoryTestSuite) createTeam(status models.TeamStatus) *models.Team {
	captain := suite.createCaptain()
	team := suite.factories.Team.WithStatus(captain.ID, status)
	suite.Require().NoError(suite.repo.Create(team))
	return team
}

// TestCreate tests creating a new team
func (suite *TeamRepositoryTestSuite) TestCreate() {
	captain := suite.createCaptain()
	team := suite.factories.Team.WithCaptain(captain.ID)

	err := suite.repo.Create(team)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, team.ID)
	suite.NotZero(team.CreatedAt)
	suite.NotZero(team.UpdatedAt)

	found, err := suite.repo.GetByID(team.ID)
	suite.NoError(err)
	suite.Equal(models.TeamStatusPending, found.Status)
	suite.False(found.IsVip)
	suite.Nil(found.Slot)
	suite.Equal(captain.ID, found.CaptainID)
}

// TestCreateDuplicateCaptain tests that the unique index rejects a second team for one captain
func (suite *TeamRepositoryTestSuite) TestCreateDuplicateCaptain() {
	captain := suite.createCaptain()
	suite.Require().NoError(suite.repo.Create(suite.factories.Team.WithCaptain(captain.ID)))

	second := suite.factories.Team.WithCaptain(captain.ID)
	second.Name = "Team Bravo"
	err := suite.repo.Create(second)

	suite.ErrorIs(err, apperrors.ErrDuplicateTeam)

	teams, err := suite.repo.GetAll()
	suite.NoError(err)
	suite.Len(teams, 1)
}

// TestCreateConcurrentDuplicate tests that concurrent registrations for one captain yield exactly one team
func (suite *TeamRepositoryTestSuite) TestCreateConcurrentDuplicate() {
	captain := suite.createCaptain()

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = suite.repo.Create(suite.factories.Team.WithCaptain(captain.ID))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, apperrors.ErrDuplicateTeam)
	}
	suite.Equal(1, succeeded)
}

// TestCreateInvalidStatus tests that an unknown status never reaches the table
func (suite *TeamRepositoryTestSuite) TestCreateInvalidStatus() {
	captain := suite.createCaptain()
	team := suite.factories.Team.WithStatus(captain.ID, models.TeamStatus("archived"))

	err := suite.repo.Create(team)

	suite.Error(err)
	teams, err := suite.repo.GetAll()
	suite.NoError(err)
	suite.Empty(teams)
}

// TestGetByIDNotFound tests retrieving a missing team
func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	team, err := suite.repo.GetByID(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(team)
}

// TestGetByCaptainID tests looking up a team by its captain
func (suite *TeamRepositoryTestSuite) TestGetByCaptainID() {
	team := suite.createTeam(models.TeamStatusPending)

	found, err := suite.repo.GetByCaptainID(team.CaptainID)
	suite.NoError(err)
	suite.Equal(team.ID, found.ID)

	_, err = suite.repo.GetByCaptainID("github:nobody")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByStatus tests filtering by status
func (suite *TeamRepositoryTestSuite) TestGetByStatus() {
	approved := suite.createTeam(models.TeamStatusApproved)
	blocked := suite.createTeam(models.TeamStatusBlocked)
	suite.createTeam(models.TeamStatusPending)
	suite.createTeam(models.TeamStatusRejected)

	teams, err := suite.repo.GetByStatus(models.TeamStatusApproved)
	suite.NoError(err)
	suite.Len(teams, 1)
	suite.Equal(approved.ID, teams[0].ID)

	teams, err = suite.repo.GetByStatus(models.TeamStatusBlocked)
	suite.NoError(err)
	suite.Len(teams, 1)
	suite.Equal(blocked.ID, teams[0].ID)

	all, err := suite.repo.GetAll()
	suite.NoError(err)
	suite.Len(all, 4)
}

// TestGetVIP tests that only approved VIP teams are returned
func (suite *TeamRepositoryTestSuite) TestGetVIP() {
	vip := suite.createTeam(models.TeamStatusApproved)
	suite.Require().NoError(suite.repo.Update(vip.ID, map[string]interface{}{"is_vip": true}))

	blockedVip := suite.createTeam(models.TeamStatusBlocked)
	suite.Require().NoError(suite.repo.Update(blockedVip.ID, map[string]interface{}{"is_vip": true}))

	suite.createTeam(models.TeamStatusApproved)

	teams, err := suite.repo.GetVIP()
	suite.NoError(err)
	suite.Len(teams, 1)
	suite.Equal(vip.ID, teams[0].ID)
}

// TestUpdate tests partial updates including clearing the slot
func (suite *TeamRepositoryTestSuite) TestUpdate() {
	team := suite.createTeam(models.TeamStatusPending)

	err := suite.repo.Update(team.ID, map[string]interface{}{
		"status": models.TeamStatusApproved,
		"slot":   3,
	})
	suite.NoError(err)

	found, err := suite.repo.GetByID(team.ID)
	suite.NoError(err)
	suite.Equal(models.TeamStatusApproved, found.Status)
	suite.Require().NotNil(found.Slot)
	suite.Equal(3, *found.Slot)
	suite.Equal("Team Alpha", found.Name)

	suite.NoError(suite.repo.Update(team.ID, map[string]interface{}{"slot": nil}))
	found, err = suite.repo.GetByID(team.ID)
	suite.NoError(err)
	suite.Nil(found.Slot)
}

// TestUpdateNotFound tests updating a missing team
func (suite *TeamRepositoryTestSuite) TestUpdateNotFound() {
	err := suite.repo.Update(uuid.New(), map[string]interface{}{"is_vip": true})
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDelete tests deleting a team and deleting it again
func (suite *TeamRepositoryTestSuite) TestDelete() {
	team := suite.createTeam(models.TeamStatusApproved)

	suite.NoError(suite.repo.Delete(team.ID))

	_, err := suite.repo.GetByID(team.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	approved, err := suite.repo.GetByStatus(models.TeamStatusApproved)
	suite.NoError(err)
	suite.Empty(approved)

	suite.NoError(suite.repo.Delete(team.ID))
}

// Run the test suite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
