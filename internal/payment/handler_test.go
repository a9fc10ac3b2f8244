package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/payment-gateway/internal"
	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
	paymentpkg "github.com/frahmantamala/payment-gateway/internal/payment"
)

type mockPaymentService struct {
	processErr error
	getErr     error
	response   *paymentpkg.PaymentResponse

	lastRequest paymentmodel.PaymentRequest
	lastKey     string
}

func (m *mockPaymentService) ProcessPayment(ctx context.Context, req paymentmodel.PaymentRequest, idempotencyKey string) (*paymentpkg.PaymentResponse, error) {
	m.lastRequest = req
	m.lastKey = idempotencyKey
	if m.processErr != nil {
		return nil, m.processErr
	}
	return m.response, nil
}

func (m *mockPaymentService) GetPaymentByID(ctx context.Context, id string) (*paymentpkg.PaymentResponse, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.response, nil
}

var _ = Describe("Payment Handler", func() {
	var (
		handler *paymentpkg.Handler
		service *mockPaymentService
		router  *chi.Mux
	)

	validBody := func() map[string]interface{} {
		return map[string]interface{}{
			"card_number":  "1234567890123456",
			"expiry_month": 12,
			"expiry_year":  time.Now().Year() + 1,
			"currency":     "USD",
			"amount":       100,
			"cvv":          "123",
			"provider":     "SIMULATOR",
		}
	}

	postPayment := func(body interface{}, idempotencyKey string) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		Expect(err).ToNot(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		if idempotencyKey != "" {
			req.Header.Set(paymentpkg.IdempotencyKeyHeader, idempotencyKey)
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = &mockPaymentService{
			response: &paymentpkg.PaymentResponse{
				ID:                 "7c9a6f5e-0001-4a2b-8c3d-9e8f7a6b5c4d",
				Status:             "Authorized",
				LastFourCardDigits: "3456",
				ExpiryMonth:        12,
				ExpiryYear:         time.Now().Year() + 1,
				Currency:           "USD",
				Amount:             100,
			},
		}
		handler = paymentpkg.NewHandler(service, logger)

		router = chi.NewRouter()
		router.Post("/payments", handler.CreatePayment)
		router.Get("/payments/{id}", handler.GetPayment)
	})

	Describe("CreatePayment", func() {
		It("should return 201 with the masked payment", func() {
			rec := postPayment(validBody(), "k1")

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var resp paymentpkg.PaymentResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ID).To(Equal(service.response.ID))
			Expect(resp.LastFourCardDigits).To(Equal("3456"))
			Expect(rec.Body.String()).ToNot(ContainSubstring("cvv"))
			Expect(rec.Body.String()).ToNot(ContainSubstring("1234567890123456"))
		})

		It("should forward the idempotency key header to the service", func() {
			postPayment(validBody(), "retry-token-9")
			Expect(service.lastKey).To(Equal("retry-token-9"))
		})

		It("should pass an empty key when the header is absent", func() {
			postPayment(validBody(), "")
			Expect(service.lastKey).To(Equal(""))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader([]byte("{not-json")))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for an invalid card number without calling the service", func() {
			body := validBody()
			body["card_number"] = "123"

			rec := postPayment(body, "")

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(service.lastRequest.CardNumber).To(BeEmpty())
		})

		It("should return 409 for an idempotency conflict", func() {
			service.processErr = errors.ErrIdempotencyConflict

			rec := postPayment(validBody(), "k1")

			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should return 502 when the bank is unavailable", func() {
			service.processErr = errors.ErrBankUnavailable

			rec := postPayment(validBody(), "")

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})

		It("should return 400 for an unsupported provider", func() {
			service.processErr = errors.ErrUnsupportedProvider

			rec := postPayment(validBody(), "")

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 500 for an unexpected error", func() {
			service.processErr = fmt.Errorf("store exploded")

			rec := postPayment(validBody(), "")

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("GetPayment", func() {
		It("should return 200 with the payment", func() {
			req := httptest.NewRequest(http.MethodGet, "/payments/"+service.response.ID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp paymentpkg.PaymentResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ID).To(Equal(service.response.ID))
		})

		It("should return 404 for an unknown id", func() {
			service.getErr = errors.ErrPaymentNotFound

			req := httptest.NewRequest(http.MethodGet, "/payments/unknown", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
