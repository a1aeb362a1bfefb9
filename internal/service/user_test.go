package service_test

import (
	"errors"
	"strings"
	"testing"

	"scrim-portal-backend/internal/database/models"
	apperrors "scrim-portal-backend/internal/errors"
	"scrim-portal-backend/internal/mocks"
	"scrim-portal-backend/internal/service"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type adminList []string

func (a adminList) IsAdminEmail(email string) bool {
	for _, e := range a {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *mocks.MockUserRepositoryInterface
	userService  *service.UserService
}

// SetupTest sets up the test suite
func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.userService = service.NewUserService(suite.mockUserRepo, adminList{"boss@scrims.gg"}, service.NewValidator())
}

// TearDownTest cleans up after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func strPtr(s string) *string { return &s }

// TestSyncLoginRegularUser tests the upsert path without promotion
func (suite *UserServiceTestSuite) TestSyncLoginRegularUser() {
	suite.mockUserRepo.EXPECT().GetByEmail("player@scrims.gg").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(u *models.User) error {
		suite.Equal("github:7", u.ID)
		suite.Equal(models.RoleUser, u.Role)
		return nil
	})
	suite.mockUserRepo.EXPECT().UpdateRole(gomock.Any(), gomock.Any()).Times(0)
	suite.mockUserRepo.EXPECT().GetByID("github:7").Return(&models.User{ID: "github:7", Role: models.RoleAdmin}, nil)

	user, err := suite.userService.SyncLogin(&service.LoginProfile{ID: "github:7", Email: strPtr("player@scrims.gg")})

	suite.NoError(err)
	// an existing admin keeps the stored role
	suite.Equal(models.RoleAdmin, user.Role)
}

// TestSyncLoginBootstrapAdmin tests that configured emails are promoted
func (suite *UserServiceTestSuite) TestSyncLoginBootstrapAdmin() {
	gomock.InOrder(
		suite.mockUserRepo.EXPECT().GetByEmail("Boss@Scrims.gg").Return(&models.User{ID: "github:8"}, nil),
		suite.mockUserRepo.EXPECT().Upsert(gomock.Any()).Return(nil),
		suite.mockUserRepo.EXPECT().UpdateRole("github:8", models.RoleAdmin).Return(nil),
		suite.mockUserRepo.EXPECT().GetByID("github:8").Return(&models.User{ID: "github:8", Role: models.RoleAdmin}, nil),
	)

	user, err := suite.userService.SyncLogin(&service.LoginProfile{ID: "github:8", Email: strPtr("Boss@Scrims.gg")})

	suite.NoError(err)
	suite.True(user.IsAdmin())
}

// TestSyncLoginEmailHeldByAnotherAccount tests that a taken email is not stored and grants nothing
func (suite *UserServiceTestSuite) TestSyncLoginEmailHeldByAnotherAccount() {
	suite.mockUserRepo.EXPECT().GetByEmail("boss@scrims.gg").Return(&models.User{ID: "github:1", Role: models.RoleAdmin}, nil)
	suite.mockUserRepo.EXPECT().Upsert(gomock.Any()).DoAndReturn(func(u *models.User) error {
		suite.Equal("github:66", u.ID)
		suite.Nil(u.Email)
		return nil
	})
	suite.mockUserRepo.EXPECT().UpdateRole(gomock.Any(), gomock.Any()).Times(0)
	suite.mockUserRepo.EXPECT().GetByID("github:66").Return(&models.User{ID: "github:66", Role: models.RoleUser}, nil)

	user, err := suite.userService.SyncLogin(&service.LoginProfile{ID: "github:66", Email: strPtr("boss@scrims.gg")})

	suite.NoError(err)
	suite.False(user.IsAdmin())
}

// TestSyncLoginErrors tests missing ids and store failures
func (suite *UserServiceTestSuite) TestSyncLoginErrors() {
	_, err := suite.userService.SyncLogin(&service.LoginProfile{})
	suite.True(apperrors.IsValidation(err))

	suite.mockUserRepo.EXPECT().Upsert(gomock.Any()).Return(errors.New("db down"))
	_, err = suite.userService.SyncLogin(&service.LoginProfile{ID: "github:9"})
	suite.Error(err)
	suite.Contains(err.Error(), "failed to upsert user")

	suite.mockUserRepo.EXPECT().GetByEmail("x@scrims.gg").Return(nil, errors.New("db down"))
	_, err = suite.userService.SyncLogin(&service.LoginProfile{ID: "github:9", Email: strPtr("x@scrims.gg")})
	suite.Error(err)
	suite.Contains(err.Error(), "failed to check email owner")
}

// TestUpdateRole tests role changes
func (suite *UserServiceTestSuite) TestUpdateRole() {
	suite.mockUserRepo.EXPECT().UpdateRole("github:1", models.RoleAdmin).Return(nil)
	suite.mockUserRepo.EXPECT().GetByID("github:1").Return(&models.User{ID: "github:1", Role: models.RoleAdmin}, nil)

	user, err := suite.userService.UpdateRole("github:1", &service.UpdateRoleRequest{Role: models.RoleAdmin})

	suite.NoError(err)
	suite.Equal(models.RoleAdmin, user.Role)
}

// TestUpdateRoleInvalid tests that unknown roles never reach the repository
func (suite *UserServiceTestSuite) TestUpdateRoleInvalid() {
	suite.mockUserRepo.EXPECT().UpdateRole(gomock.Any(), gomock.Any()).Times(0)

	_, err := suite.userService.UpdateRole("github:1", &service.UpdateRoleRequest{Role: "superuser"})
	suite.True(apperrors.IsValidation(err))
	suite.Equal("role", apperrors.ValidationDetails(err)[0].Field)

	_, err = suite.userService.UpdateRole("github:1", &service.UpdateRoleRequest{})
	suite.True(apperrors.IsValidation(err))
}

// TestUpdateRoleNotFound tests changing the role of a missing user
func (suite *UserServiceTestSuite) TestUpdateRoleNotFound() {
	suite.mockUserRepo.EXPECT().UpdateRole("github:404", models.RoleUser).Return(gorm.ErrRecordNotFound)

	_, err := suite.userService.UpdateRole("github:404", &service.UpdateRoleRequest{Role: models.RoleUser})

	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

// TestGetAll tests listing users
func (suite *UserServiceTestSuite) TestGetAll() {
	suite.mockUserRepo.EXPECT().GetAll().Return(nil, nil)

	users, err := suite.userService.GetAll()

	suite.NoError(err)
	suite.NotNil(users)
	suite.Empty(users)
}

// Run the test suite
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
