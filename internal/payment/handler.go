package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	errors "github.com/frahmantamala/payment-gateway/internal"
	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-gateway/internal/transport"
)

// IdempotencyKeyHeader carries the client's retry token, outside the body.
const IdempotencyKeyHeader = "Idempotency-Key"

type ServiceAPI interface {
	ProcessPayment(ctx context.Context, req paymentmodel.PaymentRequest, idempotencyKey string) (*PaymentResponse, error)
	GetPaymentByID(ctx context.Context, id string) (*PaymentResponse, error)
}

type Handler struct {
	transport.BaseHandler
	PaymentService ServiceAPI
	Logger         *slog.Logger
}

func NewHandler(paymentService ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler:    transport.BaseHandler{Logger: logger},
		PaymentService: paymentService,
		Logger:         logger,
	}
}

// CreatePayment handles POST /api/v1/payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req PostPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("CreatePayment: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	if err := req.Validate(); err != nil {
		h.Logger.Error("CreatePayment: validation error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	idempotencyKey := r.Header.Get(IdempotencyKeyHeader)

	resp, err := h.PaymentService.ProcessPayment(r.Context(), req.ToModel(), idempotencyKey)
	if err != nil {
		h.Logger.Error("CreatePayment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreatePayment: payment processed",
		"payment_id", resp.ID,
		"status", resp.Status)

	h.WriteJSON(w, http.StatusCreated, resp)
}

// GetPayment handles GET /api/v1/payments/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.HandleError(w, errors.NewValidationError("payment id is required", errors.ErrCodeValidationFailed))
		return
	}

	resp, err := h.PaymentService.GetPaymentByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetPayment: service error", "error", err, "payment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
