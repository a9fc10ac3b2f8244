package bank

import "context"

// BankRequest is the normalized authorization request sent to an acquiring
// bank. It never carries the idempotency key or merchant-side identifiers.
type BankRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

// BankResponse is the bank's decision for a single authorization attempt.
// A decline is a successful outcome with Authorized=false, not an error.
type BankResponse struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
}

// AcquiringBankClient is implemented once per acquiring backend. Clients
// must not retry internally; retry policy belongs to the caller.
type AcquiringBankClient interface {
	Authorize(ctx context.Context, req BankRequest) (*BankResponse, error)
	Supports(provider string) bool
}
