// Package memstore is the default payment store: two in-process indexes,
// one by payment id and one by idempotency key.
package memstore

import (
	"context"
	"sync"

	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

type Store struct {
	mu        sync.RWMutex
	byID      map[string]*paymentmodel.Payment
	byIdemKey map[string]*paymentmodel.Payment
}

func New() *Store {
	return &Store{
		byID:      make(map[string]*paymentmodel.Payment),
		byIdemKey: make(map[string]*paymentmodel.Payment),
	}
}

// Insert stores a record under its id. Ids are unique by construction
// (caller generates them), so this never checks for collisions.
func (s *Store) Insert(ctx context.Context, p *paymentmodel.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = p
	return nil
}

// BindIdempotencyKey associates a key with a record. Empty key is a no-op.
func (s *Store) BindIdempotencyKey(ctx context.Context, key string, p *paymentmodel.Payment) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byIdemKey[key] = p
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*paymentmodel.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id], nil
}

func (s *Store) GetByIdempotencyKey(ctx context.Context, key string) (*paymentmodel.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byIdemKey[key], nil
}
