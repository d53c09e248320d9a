package services

import (
	"testing"

	"docpress/models"
	"docpress/repositories"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewAuthService(repositories.NewUserRepository(suite.db))
}

func (suite *AuthServiceTestSuite) TestRegisterAndLogin() {
	resp, err := suite.service.Register(models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal(models.RoleUser, resp.User.Role)
	suite.Equal(models.ProviderLocal, resp.User.Provider)
	suite.NotEqual("secret123", resp.User.Password)

	logged, err := suite.service.Login(models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, logged.User.ID)

	_, err = suite.service.Login(models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	suite.ErrorAs(err, &models.ErrorUnauthorized{})
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.service.Register(models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Register(models.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "secret123",
	})
	suite.ErrorAs(err, &models.ErrorConflict{})
}

func (suite *AuthServiceTestSuite) TestDeactivateBlocksLogin() {
	resp, err := suite.service.Register(models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Deactivate(resp.User.ID))

	// The row survives for ratings and authorship; only login is gone.
	user, err := suite.service.GetUserByID(resp.User.ID)
	suite.Require().NoError(err)
	suite.False(user.IsActive)

	_, err = suite.service.Login(models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	suite.ErrorAs(err, &models.ErrorUnauthorized{})
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
