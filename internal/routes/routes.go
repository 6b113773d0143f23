package routes

import (
	"github.com/ayush-kumar-github/backendcodeecom/internal/auth"
	"github.com/ayush-kumar-github/backendcodeecom/internal/handlers"
	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	"github.com/ayush-kumar-github/backendcodeecom/internal/repositories"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	paymentHandler *handlers.PaymentHandler,
	tokenManager *auth.TokenManager,
	userRepo *repositories.UserRepository,
) {
	// Public routes - no authentication required
	router.Post("/auth/signup", authHandler.Signup)
	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/logout", authHandler.Logout)
	router.Post("/password/forgot", authHandler.ForgotPassword)
	router.Post("/password/reset/{token}", authHandler.ResetPassword)
	router.Get("/payments/key", paymentHandler.GetPublishableKey)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(tokenManager))

		r.Get("/users/me", userHandler.Me)
		r.Put("/users/me", userHandler.UpdateProfile)
		r.Post("/password/change", authHandler.ChangePassword)
		r.Post("/payments/intent", paymentHandler.CreatePaymentIntent)

		// Manager view: accounts with role=user only
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(userRepo, models.RoleManager, models.RoleAdmin))
			r.Get("/manager/users", adminHandler.ListManagedUsers)
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(userRepo, models.RoleAdmin))
			r.Get("/admin/users", adminHandler.ListUsers)
			r.Get("/admin/users/{id}", adminHandler.GetUser)
			r.Put("/admin/users/{id}", adminHandler.UpdateUser)
			r.Delete("/admin/users/{id}", adminHandler.DeleteUser)
		})
	})
}
