package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/c-gorringe/moxie-app/internal/application/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/shared"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/auth"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllActive(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newHandlerTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-32-characters-long", "test-issuer", 15*time.Minute, 7*24*time.Hour)
}

func newHandlerTestUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	hash, err := identityapp.HashPassword(password)
	require.NoError(t, err)
	u := &identity.User{
		Email:        email,
		Name:         "Blake Carter",
		Team:         "Apex",
		Region:       "CO",
		Role:         identity.RoleMember,
		PasswordHash: hash,
		IsActive:     true,
	}
	u.ID = uuid.New()
	return u
}

func setupAuthRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestAuthHandler_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newHandlerTestJWTService()
	user := newHandlerTestUser(t, "blake@example.com", "Password123")

	userRepo.On("FindByEmail", mock.Anything, "blake@example.com").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	authService := identityapp.NewAuthService(userRepo, jwtService, zap.NewNop())
	router := setupAuthRouter(NewAuthHandler(authService))

	body, _ := json.Marshal(LoginRequest{Email: "blake@example.com", Password: "Password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	tokens := data["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["accessToken"])
	assert.NotEmpty(t, tokens["refreshToken"])

	userData := data["user"].(map[string]interface{})
	assert.Equal(t, "blake@example.com", userData["email"])
	assert.Equal(t, "Blake Carter", userData["name"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := newHandlerTestUser(t, "blake@example.com", "Password123")
	userRepo.On("FindByEmail", mock.Anything, "blake@example.com").Return(user, nil)

	authService := identityapp.NewAuthService(userRepo, newHandlerTestJWTService(), zap.NewNop())
	router := setupAuthRouter(NewAuthHandler(authService))

	body, _ := json.Marshal(LoginRequest{Email: "blake@example.com", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response["success"].(bool))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "ERR_UNAUTHORIZED", errInfo["code"])
}

func TestAuthHandler_Login_InvalidRequestBody(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := identityapp.NewAuthService(userRepo, newHandlerTestJWTService(), zap.NewNop())
	router := setupAuthRouter(NewAuthHandler(authService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	authService := identityapp.NewAuthService(userRepo, newHandlerTestJWTService(), zap.NewNop())
	router := setupAuthRouter(NewAuthHandler(authService))

	body, _ := json.Marshal(LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newHandlerTestJWTService()
	user := newHandlerTestUser(t, "blake@example.com", "Password123")

	pair, err := jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	authService := identityapp.NewAuthService(userRepo, jwtService, zap.NewNop())
	router := setupAuthRouter(NewAuthHandler(authService))

	body, _ := json.Marshal(RefreshRequest{RefreshToken: pair.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["accessToken"])
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService := identityapp.NewAuthService(userRepo, newHandlerTestJWTService(), zap.NewNop())
	router := setupAuthRouter(NewAuthHandler(authService))

	body, _ := json.Marshal(RefreshRequest{RefreshToken: "not-a-token"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
