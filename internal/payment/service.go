package payment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/bank"
	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-gateway/internal/core/events"
)

// Repository is the payment store contract. Lookups return (nil, nil) when no
// record exists; an error always means the store itself failed.
type Repository interface {
	Insert(ctx context.Context, p *paymentmodel.Payment) error
	BindIdempotencyKey(ctx context.Context, key string, p *paymentmodel.Payment) error
	GetByID(ctx context.Context, id string) (*paymentmodel.Payment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*paymentmodel.Payment, error)
}

// keyedMutex serializes work per idempotency key. Two concurrent requests
// sharing a key would otherwise both miss the cache check and both reach the
// bank; requests with different keys never contend.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	l.mu.Unlock()
}

// PaymentService orchestrates a payment run: idempotency protocol, provider
// dispatch, persistence and projection. It is stateless between calls; all
// shared state lives in the repository.
type PaymentService struct {
	repository Repository
	registry   *bank.Registry
	eventBus   *events.EventBus
	logger     *slog.Logger

	idemLocks keyedMutex
}

func NewPaymentService(repository Repository, registry *bank.Registry, eventBus *events.EventBus, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		repository: repository,
		registry:   registry,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// ProcessPayment runs one orchestration attempt. With an idempotency key the
// outcome is: cached response for an identical replay, conflict for a reused
// key with a different body, fresh dispatch otherwise.
func (s *PaymentService) ProcessPayment(ctx context.Context, req paymentmodel.PaymentRequest, idempotencyKey string) (*PaymentResponse, error) {
	s.logger.Info("processing payment",
		"amount", req.Amount,
		"currency", req.Currency,
		"provider", req.Provider,
		"has_idempotency_key", idempotencyKey != "")

	if idempotencyKey != "" {
		s.idemLocks.Lock(idempotencyKey)
		defer s.idemLocks.Unlock(idempotencyKey)

		existing, err := s.repository.GetByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return nil, errors.NewInternalError("failed to look up idempotency key", err)
		}
		if existing != nil {
			// equality must cover every field of the original request,
			// including the provider selector
			if existing.OriginalRequest == req {
				s.logger.Info("idempotency replay, returning stored payment", "payment_id", existing.ID)
				return toPaymentResponse(existing), nil
			}
			s.logger.Warn("idempotency key reused with different request", "payment_id", existing.ID)
			return nil, errors.ErrIdempotencyConflict
		}
	}

	if !req.ExpiresAfter(time.Now()) {
		return nil, errors.ErrCardExpired
	}

	client, err := s.registry.Resolve(req.Provider)
	if err != nil {
		return nil, err
	}

	bankResp, err := client.Authorize(ctx, bank.BankRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate(),
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	})
	if err != nil {
		// no record is persisted for a bank fault
		s.logger.Error("bank authorization failed", "error", err, "provider", req.Provider)
		return nil, err
	}

	status := paymentmodel.StatusDeclined
	if bankResp.Authorized {
		status = paymentmodel.StatusAuthorized
	}

	record := paymentmodel.NewPayment(uuid.New().String(), req, status)
	if idempotencyKey != "" {
		key := idempotencyKey
		record.IdempotencyKey = &key
	}

	if err := s.repository.Insert(ctx, record); err != nil {
		return nil, errors.NewInternalError("failed to store payment", err)
	}
	if idempotencyKey != "" {
		if err := s.repository.BindIdempotencyKey(ctx, idempotencyKey, record); err != nil {
			return nil, errors.NewInternalError("failed to bind idempotency key", err)
		}
	}

	s.logger.Info("payment stored", "payment_id", record.ID, "status", record.Status)

	if s.eventBus != nil {
		event := events.NewPaymentProcessedEvent(record.ID, string(record.Status), record.Amount, record.Currency, req.Provider)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish payment event", "error", err, "payment_id", record.ID)
		}
	}

	return toPaymentResponse(record), nil
}

// GetPaymentByID is the read path. No side effects.
func (s *PaymentService) GetPaymentByID(ctx context.Context, id string) (*PaymentResponse, error) {
	record, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to load payment", err)
	}
	if record == nil {
		return nil, errors.ErrPaymentNotFound
	}
	return toPaymentResponse(record), nil
}
