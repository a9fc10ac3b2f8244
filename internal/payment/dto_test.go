package payment_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/payment-gateway/internal"
	paymentpkg "github.com/frahmantamala/payment-gateway/internal/payment"
)

var _ = Describe("PostPaymentRequest", func() {
	validPost := func() paymentpkg.PostPaymentRequest {
		return paymentpkg.PostPaymentRequest{
			CardNumber:  "1234567890123456",
			ExpiryMonth: 12,
			ExpiryYear:  time.Now().Year() + 1,
			Currency:    "USD",
			Amount:      100,
			CVV:         "123",
		}
	}

	expectFieldError := func(err error, field string) {
		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeValidationFailed))
		details, ok := appErr.Details.(errors.ValidationErrors)
		Expect(ok).To(BeTrue())
		fields := make([]string, 0, len(details.Errors))
		for _, fieldErr := range details.Errors {
			fields = append(fields, fieldErr.Field)
		}
		Expect(fields).To(ContainElement(field))
	}

	It("should accept a valid request", func() {
		req := validPost()
		Expect(req.Validate()).To(Succeed())
	})

	It("should accept an omitted provider", func() {
		req := validPost()
		req.Provider = ""
		Expect(req.Validate()).To(Succeed())
	})

	It("should reject a short card number", func() {
		req := validPost()
		req.CardNumber = "1234567890"
		expectFieldError(req.Validate(), "card_number")
	})

	It("should reject a non-numeric card number", func() {
		req := validPost()
		req.CardNumber = "1234abcd90123456"
		expectFieldError(req.Validate(), "card_number")
	})

	It("should reject an out-of-range expiry month", func() {
		req := validPost()
		req.ExpiryMonth = 13
		expectFieldError(req.Validate(), "expiry_month")
	})

	It("should reject a past expiry year", func() {
		req := validPost()
		req.ExpiryYear = time.Now().Year() - 1
		expectFieldError(req.Validate(), "expiry_year")
	})

	It("should reject a lowercase currency code", func() {
		req := validPost()
		req.Currency = "usd"
		expectFieldError(req.Validate(), "currency")
	})

	It("should reject a non-positive amount", func() {
		req := validPost()
		req.Amount = -5
		expectFieldError(req.Validate(), "amount")
	})

	It("should reject a malformed cvv", func() {
		req := validPost()
		req.CVV = "12"
		expectFieldError(req.Validate(), "cvv")
	})

	It("should carry every field into the model including provider", func() {
		req := validPost()
		req.Provider = "STRIPE"

		model := req.ToModel()

		Expect(model.CardNumber).To(Equal(req.CardNumber))
		Expect(model.ExpiryMonth).To(Equal(req.ExpiryMonth))
		Expect(model.ExpiryYear).To(Equal(req.ExpiryYear))
		Expect(model.Currency).To(Equal(req.Currency))
		Expect(model.Amount).To(Equal(req.Amount))
		Expect(model.CVV).To(Equal(req.CVV))
		Expect(model.Provider).To(Equal(req.Provider))
	})
})
