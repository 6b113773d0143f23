package services

import (
	"context"
	"log/slog"

	"github.com/ayush-kumar-github/backendcodeecom/internal/models"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// PaymentIntentResponse is the client-confirmable handle returned by the
// gateway. The service makes no guarantees about payment state beyond
// pass-through.
type PaymentIntentResponse struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"client_secret"`
}

// PaymentService creates payment intents against Stripe.
type PaymentService struct {
	api            *client.API
	publishableKey string
	logger         *slog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(secretKey, publishableKey string, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		api:            client.New(secretKey, nil),
		publishableKey: publishableKey,
		logger:         logger,
	}
}

// PublishableKey returns the key the frontend needs to confirm intents.
func (s *PaymentService) PublishableKey() string {
	return s.publishableKey
}

// CreatePaymentIntent asks the gateway for a confirmable intent.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntentResponse, error) {
	if amount <= 0 || currency == "" {
		return nil, models.ErrValidation
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		s.logger.Error("failed to create payment intent", slog.Any("error", err))
		return nil, models.ErrExternalService
	}

	s.logger.Info("payment intent created", slog.String("intent_id", intent.ID))

	return &PaymentIntentResponse{
		Amount:       amount,
		Currency:     currency,
		ClientSecret: intent.ClientSecret,
	}, nil
}
