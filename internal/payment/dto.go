package payment

import (
	"regexp"
	"time"

	errors "github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/core/common/validation"
	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{14,19}$`)
	currencyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// PostPaymentRequest is the inbound create payload.
type PostPaymentRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	CVV         string `json:"cvv"`
	Provider    string `json:"provider,omitempty"`
}

// Validate performs the structural field checks. The strictly-future expiry
// rule is a business pre-condition and lives in the service, not here.
func (r *PostPaymentRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("card_number", r.CardNumber).
		Required().
		Matches(cardNumberPattern, "card_number must be between 14 and 19 digits", errors.ErrCodeInvalidCardNumber)
	validator.Field("expiry_month", r.ExpiryMonth).
		Required().
		RangeInt(1, 12, errors.ErrCodeInvalidExpiry)
	validator.Field("expiry_year", r.ExpiryYear).
		Required().
		MinInt(time.Now().Year(), errors.ErrCodeInvalidExpiry)
	validator.Field("currency", r.Currency).
		Required().
		Matches(currencyPattern, "currency must be a 3-letter ISO code", errors.ErrCodeInvalidCurrency)
	validator.Field("amount", r.Amount).
		Required().
		PositiveInt64(errors.ErrCodeInvalidAmount)
	validator.Field("cvv", r.CVV).
		Required().
		Matches(cvvPattern, "cvv must be 3 or 4 digits", errors.ErrCodeInvalidCVV)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func (r *PostPaymentRequest) ToModel() paymentmodel.PaymentRequest {
	return paymentmodel.PaymentRequest{
		CardNumber:  r.CardNumber,
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		Currency:    r.Currency,
		Amount:      r.Amount,
		CVV:         r.CVV,
		Provider:    r.Provider,
	}
}

// PaymentResponse is the externally safe view of a payment record. It never
// carries the CVV or the idempotency key.
type PaymentResponse struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	LastFourCardDigits string `json:"last_four_card_digits"`
	ExpiryMonth        int    `json:"expiry_month"`
	ExpiryYear         int    `json:"expiry_year"`
	Currency           string `json:"currency"`
	Amount             int64  `json:"amount"`
}

func toPaymentResponse(p *paymentmodel.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                 p.ID,
		Status:             string(p.Status),
		LastFourCardDigits: maskCardNumber(p.CardNumber),
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           p.Currency,
		Amount:             p.Amount,
	}
}

// maskCardNumber keeps only the last four characters. Shorter values cannot
// happen for records created through validation; masked anyway.
func maskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return cardNumber[len(cardNumber)-4:]
}
