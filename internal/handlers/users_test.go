package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayush-kumar-github/backendcodeecom/internal/handlers"
	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMe_Success(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		GetProfileFunc: func(ctx context.Context, id string) (*services.UserResponse, error) {
			assert.Equal(t, "user123", id)
			return &services.UserResponse{
				ID:        "user123",
				Name:      "Test User",
				Email:     "user@example.com",
				Role:      models.RoleUser,
				AvatarURL: "https://assets.example.com/avatar",
			}, nil
		},
	}

	handler := handlers.NewUserHandler(mockUsers)
	req := handlers.NewTestRequest(t, "GET", "/users/me", nil)
	req = handlers.WithAuthContext(req, "user123", "user@example.com")

	w := httptest.NewRecorder()
	handler.Me(w, req)

	var resp services.UserResponse
	handlers.AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "user123", resp.ID)
	assert.Equal(t, "https://assets.example.com/avatar", resp.AvatarURL)
}

func TestMe_Unauthenticated(t *testing.T) {
	handler := handlers.NewUserHandler(&handlers.MockUserService{})
	req := handlers.NewTestRequest(t, "GET", "/users/me", nil)

	w := httptest.NewRecorder()
	handler.Me(w, req)

	handlers.AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestMe_AccountDeleted(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		GetProfileFunc: func(ctx context.Context, id string) (*services.UserResponse, error) {
			return nil, models.ErrNotFound
		},
	}

	handler := handlers.NewUserHandler(mockUsers)
	req := handlers.NewTestRequest(t, "GET", "/users/me", nil)
	req = handlers.WithAuthContext(req, "gone", "gone@example.com")

	w := httptest.NewRecorder()
	handler.Me(w, req)

	handlers.AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestUpdateProfile_NameAndEmail(t *testing.T) {
	var gotInput services.ProfileUpdateInput
	mockUsers := &handlers.MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, in services.ProfileUpdateInput) (*services.UserResponse, error) {
			gotInput = in
			return &services.UserResponse{ID: id, Name: in.Name, Email: in.Email}, nil
		},
	}

	handler := handlers.NewUserHandler(mockUsers)
	req := handlers.NewMultipartRequest(t, "PUT", "/users/me", map[string]string{
		"name":  "New Name",
		"email": "new@example.com",
	}, nil)
	req = handlers.WithAuthContext(req, "user123", "user@example.com")

	w := httptest.NewRecorder()
	handler.UpdateProfile(w, req)

	var resp services.UserResponse
	handlers.AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "New Name", gotInput.Name)
	assert.Equal(t, "new@example.com", gotInput.Email)
	assert.Nil(t, gotInput.Avatar)
}

func TestUpdateProfile_WithPhoto(t *testing.T) {
	var gotInput services.ProfileUpdateInput
	mockUsers := &handlers.MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, in services.ProfileUpdateInput) (*services.UserResponse, error) {
			gotInput = in
			return &services.UserResponse{ID: id}, nil
		},
	}

	handler := handlers.NewUserHandler(mockUsers)
	req := handlers.NewMultipartRequest(t, "PUT", "/users/me", map[string]string{}, []byte("fake-image"))
	req = handlers.WithAuthContext(req, "user123", "user@example.com")

	w := httptest.NewRecorder()
	handler.UpdateProfile(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotInput.Avatar, "the replacement photo must reach the service")
}

func TestUpdateProfile_Unauthenticated(t *testing.T) {
	handler := handlers.NewUserHandler(&handlers.MockUserService{})
	req := handlers.NewMultipartRequest(t, "PUT", "/users/me", map[string]string{"name": "X"}, nil)

	w := httptest.NewRecorder()
	handler.UpdateProfile(w, req)

	handlers.AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestUpdateProfile_AssetHostDown(t *testing.T) {
	mockUsers := &handlers.MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, in services.ProfileUpdateInput) (*services.UserResponse, error) {
			return nil, models.ErrExternalService
		},
	}

	handler := handlers.NewUserHandler(mockUsers)
	req := handlers.NewMultipartRequest(t, "PUT", "/users/me", map[string]string{}, []byte("fake-image"))
	req = handlers.WithAuthContext(req, "user123", "user@example.com")

	w := httptest.NewRecorder()
	handler.UpdateProfile(w, req)

	handlers.AssertErrorResponse(t, w, http.StatusBadGateway, "external_service_error")
}
