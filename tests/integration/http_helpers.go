package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ayush-kumar-github/backendcodeecom/internal/auth"
	"github.com/ayush-kumar-github/backendcodeecom/internal/config"
	"github.com/ayush-kumar-github/backendcodeecom/internal/database"
	"github.com/ayush-kumar-github/backendcodeecom/internal/handlers"
	middlewareCustom "github.com/ayush-kumar-github/backendcodeecom/internal/middleware"
	"github.com/ayush-kumar-github/backendcodeecom/internal/routes"
	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	"github.com/ayush-kumar-github/backendcodeecom/internal/storage"
)

// SentEmail represents a captured password reset email
type SentEmail struct {
	To       string
	ResetURL string
}

// MockEmailService captures sent emails for test assertions
type MockEmailService struct {
	SentEmails []SentEmail
	FailNext   bool
	mu         sync.Mutex
}

// SendPasswordResetEmail records the email
func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, email, resetURL string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return fmt.Errorf("simulated delivery failure")
	}

	m.SentEmails = append(m.SentEmails, SentEmail{To: email, ResetURL: resetURL})
	return nil
}

// GetLastEmail returns the most recent email sent
func (m *MockEmailService) GetLastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentEmails) == 0 {
		return nil
	}
	return &m.SentEmails[len(m.SentEmails)-1]
}

// MockAssetStorage stores uploaded avatars in memory
type MockAssetStorage struct {
	Assets map[string][]byte
	mu     sync.Mutex
}

// NewMockAssetStorage creates an empty in-memory asset store
func NewMockAssetStorage() *MockAssetStorage {
	return &MockAssetStorage{Assets: make(map[string][]byte)}
}

// Upload reads the body into memory and returns a fake asset
func (m *MockAssetStorage) Upload(ctx context.Context, body io.Reader, contentType string) (*storage.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	id := "test-asset-" + uuid.New().String()
	m.Assets[id] = data
	return &storage.Asset{ID: id, URL: "http://assets.test.local/" + id}, nil
}

// Destroy removes a stored asset
func (m *MockAssetStorage) Destroy(ctx context.Context, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Assets, assetID)
	return nil
}

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	EmailService *MockEmailService
	AssetStorage *MockAssetStorage
	Config       *config.Config

	client *http.Client
	logger *slog.Logger
}

// NewTestServer initializes a complete HTTP server with real database + mocked externals
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-32-characters-long-for-testing",
			SessionExpiry:  72 * time.Hour,
			ResetTokenTTL:  20 * time.Minute,
			CookieSecure:   false,
			CookieSameSite: "lax",
		},
		Email: config.EmailConfig{
			FromAddress:  "noreply@test.local",
			ResetURLBase: "http://localhost:3000",
		},
		Server: config.ServerConfig{
			Port: "0",
			Env:  "test",
		},
		Payments: config.PaymentsConfig{
			StripeSecretKey:      "sk_test_fake",
			StripePublishableKey: "pk_test_fake",
		},
	}

	userRepo := NewUserRepository(db)

	mockEmail := &MockEmailService{}
	mockAssets := NewMockAssetStorage()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionExpiry)

	cookieConfig := auth.CookieConfig{
		Secure:   cfg.Auth.CookieSecure,
		SameSite: cfg.Auth.CookieSameSite,
	}

	authService := services.NewAuthService(
		userRepo, tokenManager, mockAssets, mockEmail,
		logger, cfg.Auth.ResetTokenTTL, cfg.Email.ResetURLBase,
	)
	userService := services.NewUserService(userRepo, mockAssets, logger)
	adminService := services.NewAdminService(userRepo, mockAssets, logger)
	paymentService := services.NewPaymentService(
		cfg.Payments.StripeSecretKey, cfg.Payments.StripePublishableKey, logger,
	)

	authHandler := handlers.NewAuthHandler(authService, cookieConfig)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, authHandler, userHandler, adminHandler, paymentHandler, tokenManager, userRepo)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:       server,
		DB:           db,
		EmailService: mockEmail,
		AssetStorage: mockAssets,
		Config:       cfg,
		client:       &http.Client{},
		logger:       logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return ts.client.Do(req)
}

// RequestWithSession makes an HTTP request carrying the session cookie
func (ts *TestServer) RequestWithSession(method, path, sessionToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Cookie": auth.SessionCookieName + "=" + sessionToken,
	}
	return ts.Request(method, path, body, headers)
}

// SignupMultipart submits a multipart signup form with an avatar photo
func (ts *TestServer) SignupMultipart(name, email, password string, photo []byte) (*http.Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	writer.WriteField("name", name)
	writer.WriteField("email", email)
	writer.WriteField("password", password)

	part, err := writer.CreateFormFile("photo", "avatar.png")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(photo); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/auth/signup", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return ts.client.Do(req)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractSessionToken pulls the session token out of the Set-Cookie header
func ExtractSessionToken(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// GetErrorMessage extracts error message from error response
func GetErrorMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return "", err
	}
	if msg, ok := errResp["message"].(string); ok {
		return msg, nil
	}
	return "", nil
}
