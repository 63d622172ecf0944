package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/validation"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *validation.RegisterRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *validation.LoginRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("valid registration is a 201 with user and token", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, mock.AnythingOfType("*validation.RegisterRequest")).
			Return(&service.AuthResult{
				User:  &model.User{ID: 1, Email: "john@example.com", PasswordHash: "secret-hash"},
				Token: "signed-token",
			}, nil)
		h := NewAuthHandler(svc)

		body := `{"firstname":"John","lastname":"Doe","email":"john@example.com","password":"password123"}`
		c, rec := newTaskContext(t, http.MethodPost, "/api/auth/register", body)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			User  map[string]interface{} `json:"user"`
			Token string                 `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "john@example.com", resp.User["email"])
		assert.Equal(t, "signed-token", resp.Token)
		assert.NotContains(t, rec.Body.String(), "secret-hash")
	})

	t.Run("invalid payload is a 400 with field details", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)

		body := `{"firstname":"J","lastname":"Doe","email":"not-an-email","password":"123"}`
		c, rec := newTaskContext(t, http.MethodPost, "/api/auth/register", body)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Details)
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("duplicate email is a 409", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, mock.AnythingOfType("*validation.RegisterRequest")).
			Return(nil, errors.NewConflictError("User with this email already exists"))
		h := NewAuthHandler(svc)

		body := `{"firstname":"John","lastname":"Doe","email":"dup@example.com","password":"password123"}`
		c, rec := newTaskContext(t, http.MethodPost, "/api/auth/register", body)

		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp errors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User with this email already exists", resp.Error)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials are a 200", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, mock.AnythingOfType("*validation.LoginRequest")).
			Return(&service.AuthResult{
				User:  &model.User{ID: 1, Email: "john@example.com"},
				Token: "signed-token",
			}, nil)
		h := NewAuthHandler(svc)

		body := `{"email":"john@example.com","password":"password123"}`
		c, rec := newTaskContext(t, http.MethodPost, "/api/auth/login", body)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad credentials are a 401", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, mock.AnythingOfType("*validation.LoginRequest")).
			Return(nil, errors.NewUnauthorizedError("Invalid email or password"))
		h := NewAuthHandler(svc)

		body := `{"email":"john@example.com","password":"wrong-password"}`
		c, rec := newTaskContext(t, http.MethodPost, "/api/auth/login", body)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp errors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid email or password", resp.Error)
	})
}
