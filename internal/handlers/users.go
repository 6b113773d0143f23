package handlers

import (
	"context"
	"net/http"

	"github.com/ayush-kumar-github/backendcodeecom/internal/auth"
	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	pkghttp "github.com/ayush-kumar-github/backendcodeecom/pkg/http"
)

// UserServiceInterface defines the interface for profile business logic
type UserServiceInterface interface {
	GetProfile(ctx context.Context, id string) (*services.UserResponse, error)
	UpdateProfile(ctx context.Context, id string, in services.ProfileUpdateInput) (*services.UserResponse, error)
}

// UserHandler handles profile HTTP requests
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Me returns the authenticated user's own account.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's name, email and avatar.
// Multipart so an optional replacement photo can ride along.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	in := services.ProfileUpdateInput{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		in.Avatar = &services.AvatarUpload{
			Body:        file,
			ContentType: header.Header.Get("Content-Type"),
		}
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.UserID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}
