package usecase_test

import (
	"context"
	"errors"
	"testing"

	"course-platform/internal/auth/domain/model"
	"course-platform/internal/auth/testutil"
	"course-platform/internal/auth/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthUsecaseTestSuite struct {
	suite.Suite
	repo     *mockUserRepository
	tokenSvc *mockTokenService
	usecase  *usecase.AuthUsecase
	users    *testutil.UserFixture
}

func (suite *AuthUsecaseTestSuite) SetupTest() {
	suite.repo = &mockUserRepository{}
	suite.tokenSvc = &mockTokenService{}
	suite.usecase = usecase.NewAuthUsecase(suite.repo, suite.tokenSvc)
	suite.users = testutil.NewUserFixture()
}

func (suite *AuthUsecaseTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.users.Instructor()

	suite.repo.On("GetUserByEmail", ctx, "test@example.com").Return(user, nil)
	suite.tokenSvc.On("GenerateToken", ctx, user).Return("signed-token", nil)

	resp, err := suite.usecase.Login(ctx, usecase.LoginRequest{
		Email:    "  Test@Example.com ",
		Password: testutil.DefaultPassword,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "signed-token", resp.Token)
	assert.Same(suite.T(), user, resp.User)
	suite.repo.AssertExpectations(suite.T())
	suite.tokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthUsecaseTestSuite) TestLogin_MissingFields() {
	for _, req := range []usecase.LoginRequest{
		{Email: "", Password: "x"},
		{Email: "a@b.c", Password: ""},
	} {
		_, err := suite.usecase.Login(context.Background(), req)
		assert.ErrorIs(suite.T(), err, usecase.ErrMissingCredentials)
	}
	suite.repo.AssertNotCalled(suite.T(), "GetUserByEmail", mock.Anything, mock.Anything)
}

func (suite *AuthUsecaseTestSuite) TestLogin_UnknownUser() {
	suite.repo.On("GetUserByEmail", mock.Anything, "who@example.com").Return(nil, model.ErrUserNotFound)

	_, err := suite.usecase.Login(context.Background(), usecase.LoginRequest{Email: "who@example.com", Password: "x"})

	assert.ErrorIs(suite.T(), err, usecase.ErrUserNotRegistered)
}

func (suite *AuthUsecaseTestSuite) TestLogin_WrongPassword() {
	suite.repo.On("GetUserByEmail", mock.Anything, "test@example.com").Return(suite.users.Student(), nil)

	_, err := suite.usecase.Login(context.Background(), usecase.LoginRequest{Email: "test@example.com", Password: "wrong"})

	assert.ErrorIs(suite.T(), err, usecase.ErrInvalidCredentials)
	suite.tokenSvc.AssertNotCalled(suite.T(), "GenerateToken", mock.Anything, mock.Anything)
}

func (suite *AuthUsecaseTestSuite) TestLogin_RepositoryFailure() {
	dbErr := errors.New("connection reset")
	suite.repo.On("GetUserByEmail", mock.Anything, "test@example.com").Return(nil, dbErr)

	_, err := suite.usecase.Login(context.Background(), usecase.LoginRequest{Email: "test@example.com", Password: "x"})

	assert.ErrorIs(suite.T(), err, dbErr)
	assert.NotErrorIs(suite.T(), err, usecase.ErrUserNotRegistered)
}

func (suite *AuthUsecaseTestSuite) TestGetUserByID() {
	user := suite.users.Admin()
	suite.repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	got, err := suite.usecase.GetUserByID(context.Background(), user.ID)
	require.NoError(suite.T(), err)
	assert.Same(suite.T(), user, got)

	_, err = suite.usecase.GetUserByID(context.Background(), "")
	assert.ErrorIs(suite.T(), err, model.ErrUserNotFound)
}

func TestAuthUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuthUsecaseTestSuite))
}
