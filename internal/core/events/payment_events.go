package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentProcessed = "payment.processed"
)

// PaymentProcessedEvent is published after a payment record reaches a
// terminal status and is stored. It carries no PAN and no CVV.
type PaymentProcessedEvent struct {
	BaseEvent
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Provider  string `json:"provider"`
}

func NewPaymentProcessedEvent(paymentID, status string, amount int64, currency, provider string) *PaymentProcessedEvent {
	return &PaymentProcessedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentProcessed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id": paymentID,
				"status":     status,
				"amount":     amount,
				"currency":   currency,
				"provider":   provider,
			},
		},
		PaymentID: paymentID,
		Status:    status,
		Amount:    amount,
		Currency:  currency,
		Provider:  provider,
	}
}
