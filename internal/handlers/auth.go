package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ayush-kumar-github/backendcodeecom/internal/auth"
	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	pkghttp "github.com/ayush-kumar-github/backendcodeecom/pkg/http"
	"github.com/go-chi/chi/v5"
)

const maxAvatarMemory = 10 << 20 // 10 MiB

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, plainToken, password, confirmPassword string) (*services.AuthResponse, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*services.AuthResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service      AuthServiceInterface
	cookieConfig auth.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, cookieConfig auth.CookieConfig) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieConfig: cookieConfig,
	}
}

// Request DTOs

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents the request body for forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request body for reset-password
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ChangePasswordRequest represents the request body for change-password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// Signup handles account registration. The request is multipart/form-data
// because an avatar file is mandatory.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	in := services.SignupInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		in.Avatar = &services.AvatarUpload{
			Body:        file,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	authResp, err := h.service.Signup(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	auth.SetSessionCookie(w, authResp.Token, authResp.ExpiresAt, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusCreated, authResp)
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	authResp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	auth.SetSessionCookie(w, authResp.Token, authResp.ExpiresAt, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, authResp)
}

// Logout overwrites the session cookie with an already-expired credential.
// Idempotent: logging out twice is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "logout success",
	})
}

// ForgotPassword starts the password recovery flow.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "password reset email sent",
	})
}

// ResetPassword completes the recovery flow with the token from the email.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		pkghttp.WriteBadRequest(w, "Reset token is required")
		return
	}

	var req ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	authResp, err := h.service.ResetPassword(r.Context(), token, req.Password, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	auth.SetSessionCookie(w, authResp.Token, authResp.ExpiresAt, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, authResp)
}

// ChangePassword replaces the authenticated user's password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	authResp, err := h.service.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	auth.SetSessionCookie(w, authResp.Token, authResp.ExpiresAt, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, authResp)
}
