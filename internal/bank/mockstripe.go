package bank

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

const ProviderStripe = "STRIPE"

// MockStripeClient is a local stand-in for a Stripe acquiring backend.
// It performs no network call and always authorizes.
type MockStripeClient struct {
	logger *slog.Logger
}

func NewMockStripeClient(logger *slog.Logger) *MockStripeClient {
	return &MockStripeClient{logger: logger}
}

func (c *MockStripeClient) Authorize(ctx context.Context, req BankRequest) (*BankResponse, error) {
	c.logger.Info("processing payment via mock stripe", "last_four", lastFour(req.CardNumber))

	return &BankResponse{
		Authorized:        true,
		AuthorizationCode: "stripe_" + uuid.New().String(),
	}, nil
}

func (c *MockStripeClient) Supports(provider string) bool {
	return strings.EqualFold(provider, ProviderStripe)
}
