package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authhttp "course-platform/internal/auth/adapter/http"
	"course-platform/internal/auth/adapter/security"
	"course-platform/internal/auth/domain/model"
	authusecase "course-platform/internal/auth/usecase"
	"course-platform/internal/config"
	profilehttp "course-platform/internal/profile/adapter/http"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/responder"
	"course-platform/internal/shared/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type mockProfileUsecase struct {
	mock.Mock
}

func (m *mockProfileUsecase) GetUserDetails(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockProfileUsecase) UpdateDisplayPicture(ctx context.Context, userID, picturePath string) (*model.User, error) {
	args := m.Called(ctx, userID, picturePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type ProfileRouterTestSuite struct {
	suite.Suite
	app    *fiber.App
	mockUC *mockProfileUsecase
	bearer string
}

func (suite *ProfileRouterTestSuite) SetupTest() {
	tokens, err := security.NewJWTokenService("profile-secret", time.Hour)
	require.NoError(suite.T(), err)
	token, err := tokens.GenerateToken(context.Background(), &model.User{ID: "u1", AccountType: model.AccountTypeStudent})
	require.NoError(suite.T(), err)
	suite.bearer = "Bearer " + token

	log := logger.NewNopLogger()
	suite.mockUC = &mockProfileUsecase{}
	suite.app = fiber.New(fiber.Config{ErrorHandler: responder.ErrorHandler(false, log)})
	auth := authhttp.NewAuthMiddleware(authusecase.NewGate(tokens), false, log)
	uploads := upload.NewInterceptor(config.UploadConfig{TempDir: suite.T().TempDir(), MaxFileSize: 16}, log)
	profilehttp.NewProfileHTTPHandler(suite.mockUC).SetupProfileRoutes(suite.app.Group("/api/v1/profile"), auth, uploads)
}

func (suite *ProfileRouterTestSuite) send(req *http.Request) (int, map[string]interface{}) {
	resp, err := suite.app.Test(req, -1)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (suite *ProfileRouterTestSuite) pictureRequest(content []byte) *http.Request {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(profilehttp.PictureField, "me.png")
	require.NoError(suite.T(), err)
	_, err = part.Write(content)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), w.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/updateDisplayPicture", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", suite.bearer)
	return req
}

func (suite *ProfileRouterTestSuite) TestGetUserDetails() {
	suite.mockUC.On("GetUserDetails", mock.Anything, "u1").Return(&model.User{ID: "u1", Email: "a@b.c"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/getUserDetails", nil)
	req.Header.Set("Authorization", suite.bearer)
	status, body := suite.send(req)

	assert.Equal(suite.T(), http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), "a@b.c", data["email"])
	assert.NotContains(suite.T(), data, "password")
}

func (suite *ProfileRouterTestSuite) TestGetUserDetails_RequiresToken() {
	status, body := suite.send(httptest.NewRequest(http.MethodGet, "/api/v1/profile/getUserDetails", nil))

	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	assert.Equal(suite.T(), "Token is Missing or Invalid Format", body["message"])
}

func (suite *ProfileRouterTestSuite) TestGetUserDetails_NotFound() {
	suite.mockUC.On("GetUserDetails", mock.Anything, "u1").Return(nil, model.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/getUserDetails", nil)
	req.Header.Set("Authorization", suite.bearer)
	status, body := suite.send(req)

	assert.Equal(suite.T(), http.StatusNotFound, status)
	assert.Equal(suite.T(), "User not found", body["message"])
}

func (suite *ProfileRouterTestSuite) TestUpdateDisplayPicture() {
	suite.mockUC.On("UpdateDisplayPicture", mock.Anything, "u1", mock.MatchedBy(func(p string) bool {
		return strings.HasSuffix(p, "-me.png")
	})).Return(&model.User{ID: "u1", Image: "https://cdn/me.png"}, nil)

	status, body := suite.send(suite.pictureRequest([]byte("png")))

	assert.Equal(suite.T(), http.StatusOK, status)
	assert.Equal(suite.T(), "Image Updated successfully", body["message"])
}

func (suite *ProfileRouterTestSuite) TestUpdateDisplayPicture_TooLarge() {
	status, body := suite.send(suite.pictureRequest(bytes.Repeat([]byte("x"), 64)))

	assert.Equal(suite.T(), http.StatusRequestEntityTooLarge, status)
	assert.Equal(suite.T(), "File size limit has been reached", body["message"])
	suite.mockUC.AssertNotCalled(suite.T(), "UpdateDisplayPicture", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileRouterTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileRouterTestSuite))
}
