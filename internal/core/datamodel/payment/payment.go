package payment

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	StatusAuthorized PaymentStatus = "Authorized"
	StatusDeclined   PaymentStatus = "Declined"
)

// PaymentRequest is the normalized create request. It is a plain comparable
// value type: the idempotency conflict check relies on == comparing every
// field, including the optional Provider selector.
type PaymentRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	CVV         string `json:"cvv"`
	Provider    string `json:"provider,omitempty"`
}

// ExpiryDate renders the combined expiry the acquiring banks expect.
func (r PaymentRequest) ExpiryDate() string {
	return fmt.Sprintf("%02d/%d", r.ExpiryMonth, r.ExpiryYear)
}

// ExpiresAfter reports whether the card expiry denotes a month strictly
// after the month of now. A card expiring this month is already unusable.
func (r PaymentRequest) ExpiresAfter(now time.Time) bool {
	if r.ExpiryMonth < 1 || r.ExpiryMonth > 12 {
		return false
	}
	if r.ExpiryYear != now.Year() {
		return r.ExpiryYear > now.Year()
	}
	return time.Month(r.ExpiryMonth) > now.Month()
}

// Payment is the authoritative record, immutable once stored. The original
// request is retained verbatim for the idempotency comparison.
type Payment struct {
	ID              string         `json:"id" gorm:"primaryKey;type:uuid"`
	CardNumber      string         `json:"card_number"`
	ExpiryMonth     int            `json:"expiry_month"`
	ExpiryYear      int            `json:"expiry_year"`
	Currency        string         `json:"currency"`
	Amount          int64          `json:"amount"`
	CVV             string         `json:"cvv" gorm:"column:cvv"`
	Status          PaymentStatus  `json:"status"`
	IdempotencyKey  *string        `json:"idempotency_key,omitempty" gorm:"uniqueIndex"`
	OriginalRequest PaymentRequest `json:"original_request" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (Payment) TableName() string { return "payments" }

// NewPayment copies the request into a fresh record with the resolved status.
func NewPayment(id string, req PaymentRequest, status PaymentStatus) *Payment {
	return &Payment{
		ID:              id,
		CardNumber:      req.CardNumber,
		ExpiryMonth:     req.ExpiryMonth,
		ExpiryYear:      req.ExpiryYear,
		Currency:        req.Currency,
		Amount:          req.Amount,
		CVV:             req.CVV,
		Status:          status,
		OriginalRequest: req,
		CreatedAt:       time.Now().UTC(),
	}
}
