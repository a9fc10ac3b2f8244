package bank_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/bank"
)

var _ = Describe("SimulatorClient", func() {
	var (
		logger *slog.Logger
		server *httptest.Server
	)

	request := bank.BankRequest{
		CardNumber: "1234567890123456",
		ExpiryDate: "04/2030",
		Currency:   "USD",
		Amount:     100,
		CVV:        "123",
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	newClient := func(handler http.HandlerFunc) *bank.SimulatorClient {
		server = httptest.NewServer(handler)
		return bank.NewSimulatorClient(server.URL, 2*time.Second, logger)
	}

	It("should decode an authorized response", func() {
		var received bank.BankRequest
		client := newClient(func(w http.ResponseWriter, r *http.Request) {
			Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
			json.NewEncoder(w).Encode(bank.BankResponse{Authorized: true, AuthorizationCode: "auth-1"})
		})

		resp, err := client.Authorize(context.Background(), request)

		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Authorized).To(BeTrue())
		Expect(resp.AuthorizationCode).To(Equal("auth-1"))
		Expect(received).To(Equal(request))
	})

	It("should pass through a decline as a successful outcome", func() {
		client := newClient(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(bank.BankResponse{Authorized: false})
		})

		resp, err := client.Authorize(context.Background(), request)

		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Authorized).To(BeFalse())
	})

	It("should report a rejection for a 4xx response", func() {
		client := newClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.Authorize(context.Background(), request)

		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeBankRejected))
	})

	It("should report unavailability for a 5xx response", func() {
		client := newClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Authorize(context.Background(), request)

		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeBankUnavailable))
	})

	It("should treat a timeout as unavailability, never as a decline", func() {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		client := bank.NewSimulatorClient(server.URL, 50*time.Millisecond, logger)

		_, err := client.Authorize(context.Background(), request)

		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeBankUnavailable))
	})

	It("should only support the simulator provider name", func() {
		client := bank.NewSimulatorClient("http://localhost:8080/payments", time.Second, logger)
		Expect(client.Supports("simulator")).To(BeTrue())
		Expect(client.Supports("SIMULATOR")).To(BeTrue())
		Expect(client.Supports("STRIPE")).To(BeFalse())
	})
})

var _ = Describe("MockStripeClient", func() {
	It("should always authorize with a stripe reference", func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client := bank.NewMockStripeClient(logger)

		resp, err := client.Authorize(context.Background(), bank.BankRequest{CardNumber: "1234567890123456"})

		Expect(err).ToNot(HaveOccurred())
		Expect(resp.Authorized).To(BeTrue())
		Expect(resp.AuthorizationCode).To(HavePrefix("stripe_"))
	})

	It("should only support the stripe provider name", func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client := bank.NewMockStripeClient(logger)
		Expect(client.Supports("stripe")).To(BeTrue())
		Expect(client.Supports("SIMULATOR")).To(BeFalse())
	})
})
