package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/event-manager/internal/errdef"
	internalHandler "github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := internalHandler.RegisterValidation(); err != nil {
		panic(err)
	}
	m.Run()
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) SignUp(ctx context.Context, name, email, password, role string) (*model.User, error) {
	called := m.Called(name, email, password, role)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	called := m.Called(email, password)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	called := m.Called(id, newPassword)
	return called.Error(0)
}

func (m *mockUserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	called := m.Called(id)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) FindAll(ctx context.Context) ([]*model.User, error) {
	called := m.Called()
	users, _ := called.Get(0).([]*model.User)
	return users, called.Error(1)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) IssueToken(ctx context.Context, user *model.User) (string, error) {
	called := m.Called(user)
	return called.String(0), called.Error(1)
}

func (m *mockTokenService) RevokeSession(ctx context.Context, userID uint, tokenString string) error {
	called := m.Called(userID, tokenString)
	return called.Error(0)
}

func (m *mockTokenService) RevokeAllSessions(ctx context.Context, userID uint) error {
	called := m.Called(userID)
	return called.Error(0)
}

func newPost(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestHandler_SignUp(t *testing.T) {
	userService := &mockUserService{}
	created := &model.User{ID: 1, Name: "Ann", Email: "ann@example.com", Password: "hash", Role: model.RoleUser}
	userService.
		On("SignUp", "Ann", "ann@example.com", "password123", "").
		Return(created, nil)
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/signup", &SignUpRequest{Name: "Ann", Email: "ann@example.com", Password: "password123"})

	handler.SignUp(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":true`)
	assert.NotContains(t, recorder.Body.String(), "hash")
	assert.NotContains(t, recorder.Body.String(), "password")
	userService.AssertExpectations(t)
}

func TestHandler_SignUp_InvalidRole(t *testing.T) {
	handler := NewHandler(&mockUserService{}, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/signup", &SignUpRequest{Name: "Ann", Email: "ann@example.com", Password: "password123", Role: "superuser"})

	handler.SignUp(c)

	require.Len(t, c.Errors.Errors(), 1)
	assert.True(t, errdef.IsBadRequest(c.Errors.Last()))
}

func TestHandler_SignIn(t *testing.T) {
	userService := &mockUserService{}
	user := &model.User{ID: 1, Email: "ann@example.com", Password: "hash"}
	userService.
		On("SignIn", "ann@example.com", "password123").
		Return(user, nil)
	tokenService := &mockTokenService{}
	tokenService.
		On("IssueToken", user).
		Return("signed-token", nil)
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/signin", &SignInRequest{Email: "ann@example.com", Password: "password123"})

	handler.SignIn(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token":"signed-token"`)
	assert.NotContains(t, recorder.Body.String(), "hash")
	tokenService.AssertExpectations(t)
}

func TestHandler_LogOut_RevokesSingleSession(t *testing.T) {
	userService := &mockUserService{}
	userService.
		On("FindByID", uint(1)).
		Return(&model.User{ID: 1}, nil)
	tokenService := &mockTokenService{}
	tokenService.
		On("RevokeSession", uint(1), "signed-token").
		Return(nil)
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/logout", &LogOutRequest{UserID: 1, Token: "signed-token"})

	handler.LogOut(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	tokenService.AssertExpectations(t)
}

func TestHandler_LogOut_UnknownUser(t *testing.T) {
	userService := &mockUserService{}
	userService.
		On("FindByID", uint(9)).
		Return(nil, errdef.NewNotFound("failed to find user with id %d", 9))
	tokenService := &mockTokenService{}
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/logout", &LogOutRequest{UserID: 9, Token: "signed-token"})

	handler.LogOut(c)

	require.Len(t, c.Errors.Errors(), 1)
	assert.True(t, errdef.IsNotFound(c.Errors.Last()))
	tokenService.AssertNotCalled(t, "RevokeSession", mock.Anything, mock.Anything)
}

func TestHandler_LogOutFromAllDevices(t *testing.T) {
	userService := &mockUserService{}
	userService.
		On("FindByID", uint(1)).
		Return(&model.User{ID: 1}, nil)
	tokenService := &mockTokenService{}
	tokenService.
		On("RevokeAllSessions", uint(1)).
		Return(nil)
	handler := NewHandler(userService, tokenService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/logout-all", &LogOutAllRequest{UserID: 1})

	handler.LogOutFromAllDevices(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	tokenService.AssertExpectations(t)
}

func TestHandler_FindUserByID(t *testing.T) {
	userService := &mockUserService{}
	userService.
		On("FindByID", uint(5)).
		Return(&model.User{ID: 5, Email: "bob@example.com", Password: "hash"}, nil)
	handler := NewHandler(userService, &mockTokenService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/user/5", nil)
	c.Params = gin.Params{{Key: "userId", Value: "5"}}

	handler.FindUserByID(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "bob@example.com")
	assert.NotContains(t, recorder.Body.String(), "hash")
}
