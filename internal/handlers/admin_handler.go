package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	pkghttp "github.com/ayush-kumar-github/backendcodeecom/pkg/http"
	"github.com/go-chi/chi/v5"
)

// AdminServiceInterface defines the account administration contract.
type AdminServiceInterface interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
	ListManagedUsers(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
	GetUser(ctx context.Context, id string) (*services.UserResponse, error)
	UpdateUser(ctx context.Context, id string, in services.AdminUpdateInput) (*services.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

// AdminHandler handles privileged account-administration HTTP requests.
type AdminHandler struct {
	service AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// AdminUpdateUserRequest represents the request body for admin updates.
// The password is deliberately not accepted on this path.
type AdminUpdateUserRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=user manager admin"`
}

// ListUsersResponse represents a list of accounts
type ListUsersResponse struct {
	Users []*services.UserResponse `json:"users"`
	Total int                      `json:"total"`
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, &ListUsersResponse{Users: users, Total: len(users)})
}

// ListManagedUsers handles GET /manager/users, restricted to role=user accounts.
func (h *AdminHandler) ListManagedUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	users, err := h.service.ListManagedUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, &ListUsersResponse{Users: users, Total: len(users)})
}

// GetUser handles GET /admin/users/{id}
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	var req AdminUpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, services.AdminUpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
