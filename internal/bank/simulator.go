package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	errors "github.com/frahmantamala/payment-gateway/internal"
)

const ProviderSimulator = "SIMULATOR"

// SimulatorClient talks to the bank simulator over HTTP.
type SimulatorClient struct {
	client  *http.Client
	bankURL string
	logger  *slog.Logger
}

func NewSimulatorClient(bankURL string, timeout time.Duration, logger *slog.Logger) *SimulatorClient {
	return &SimulatorClient{
		client: &http.Client{
			Timeout: timeout,
		},
		bankURL: bankURL,
		logger:  logger,
	}
}

func (c *SimulatorClient) Authorize(ctx context.Context, req BankRequest) (*BankResponse, error) {
	c.logger.Info("sending authorization to simulator bank", "last_four", lastFour(req.CardNumber))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewInternalError("failed to marshal bank request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bankURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, errors.NewInternalError("failed to create bank request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		// covers transport failures and timeouts; a timed-out authorization
		// must never be guessed as a decline
		c.logger.Error("simulator bank unreachable", "error", err)
		return nil, errors.ErrBankUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		c.logger.Error("simulator bank fault", "status", resp.StatusCode)
		return nil, errors.ErrBankUnavailable.WithCause(fmt.Errorf("bank returned status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		c.logger.Error("simulator bank rejected request", "status", resp.StatusCode)
		return nil, errors.ErrBankRejected.WithCause(fmt.Errorf("bank returned status %d", resp.StatusCode))
	}

	var bankResp BankResponse
	if err := json.NewDecoder(resp.Body).Decode(&bankResp); err != nil {
		return nil, errors.ErrBankUnavailable.WithCause(fmt.Errorf("failed to decode bank response: %w", err))
	}

	c.logger.Info("simulator bank responded",
		"authorized", bankResp.Authorized,
		"last_four", lastFour(req.CardNumber))

	return &bankResp, nil
}

func (c *SimulatorClient) Supports(provider string) bool {
	return strings.EqualFold(provider, ProviderSimulator)
}

func lastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return cardNumber[len(cardNumber)-4:]
}
