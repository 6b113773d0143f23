package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayush-kumar-github/backendcodeecom/internal/auth"
	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	pkghttp "github.com/ayush-kumar-github/backendcodeecom/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewMultipartRequest creates a multipart/form-data request with fields and
// an optional photo attachment
func NewMultipartRequest(t *testing.T, method, url string, fields map[string]string, photo []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if photo != nil {
		part, err := writer.CreateFormFile("photo", "avatar.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// WithAuthContext adds session claims to request context for testing authenticated endpoints
func WithAuthContext(req *http.Request, userID, email string) *http.Request {
	claims := &models.SessionClaims{
		UserID: userID,
		Email:  email,
	}
	return req.WithContext(context.WithValue(req.Context(), auth.UserContextKey, claims))
}

// AssertJSONResponse decodes a JSON response and checks the status code
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// AssertErrorResponse checks a standard error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code)

	var resp pkghttp.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	assert.Equal(t, expectedCode, resp.Error)
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	SignupFunc         func(ctx context.Context, in services.SignupInput) (*services.AuthResponse, error)
	LoginFunc          func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, plainToken, password, confirmPassword string) (*services.AuthResponse, error)
	ChangePasswordFunc func(ctx context.Context, userID, oldPassword, newPassword string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Signup(ctx context.Context, in services.SignupInput) (*services.AuthResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, in)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, plainToken, password, confirmPassword string) (*services.AuthResponse, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, plainToken, password, confirmPassword)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*services.AuthResponse, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, oldPassword, newPassword)
	}
	return nil, models.ErrInternalServer
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetProfileFunc    func(ctx context.Context, id string) (*services.UserResponse, error)
	UpdateProfileFunc func(ctx context.Context, id string, in services.ProfileUpdateInput) (*services.UserResponse, error)
}

func (m *MockUserService) GetProfile(ctx context.Context, id string) (*services.UserResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, in services.ProfileUpdateInput) (*services.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, in)
	}
	return nil, models.ErrInternalServer
}

// MockAdminService implements AdminServiceInterface for testing
type MockAdminService struct {
	ListUsersFunc        func(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
	ListManagedUsersFunc func(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
	GetUserFunc          func(ctx context.Context, id string) (*services.UserResponse, error)
	UpdateUserFunc       func(ctx context.Context, id string, in services.AdminUpdateInput) (*services.UserResponse, error)
	DeleteUserFunc       func(ctx context.Context, id string) error
}

func (m *MockAdminService) ListUsers(ctx context.Context, limit, offset int) ([]*services.UserResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, limit, offset)
	}
	return []*services.UserResponse{}, nil
}

func (m *MockAdminService) ListManagedUsers(ctx context.Context, limit, offset int) ([]*services.UserResponse, error) {
	if m.ListManagedUsersFunc != nil {
		return m.ListManagedUsersFunc(ctx, limit, offset)
	}
	return []*services.UserResponse{}, nil
}

func (m *MockAdminService) GetUser(ctx context.Context, id string) (*services.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAdminService) UpdateUser(ctx context.Context, id string, in services.AdminUpdateInput) (*services.UserResponse, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, in)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAdminService) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

// MockPaymentService implements PaymentServiceInterface for testing
type MockPaymentService struct {
	PublishableKeyFunc      func() string
	CreatePaymentIntentFunc func(ctx context.Context, amount int64, currency string) (*services.PaymentIntentResponse, error)
}

func (m *MockPaymentService) PublishableKey() string {
	if m.PublishableKeyFunc != nil {
		return m.PublishableKeyFunc()
	}
	return "pk_test_mock"
}

func (m *MockPaymentService) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*services.PaymentIntentResponse, error) {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, amount, currency)
	}
	return nil, models.ErrInternalServer
}
