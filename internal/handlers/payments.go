package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ayush-kumar-github/backendcodeecom/internal/services"
	pkghttp "github.com/ayush-kumar-github/backendcodeecom/pkg/http"
)

// PaymentServiceInterface defines the payment gateway boundary.
type PaymentServiceInterface interface {
	PublishableKey() string
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*services.PaymentIntentResponse, error)
}

// PaymentHandler handles payment pass-through HTTP requests.
type PaymentHandler struct {
	service PaymentServiceInterface
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePaymentIntentRequest represents the request body for an intent.
type CreatePaymentIntentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}

// GetPublishableKey handles GET /payments/key
func (h *PaymentHandler) GetPublishableKey(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"publishable_key": h.service.PublishableKey(),
	})
}

// CreatePaymentIntent handles POST /payments/intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), req.Amount, req.Currency)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, intent)
}
