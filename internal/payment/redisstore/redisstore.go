// Package redisstore backs the payment store with Redis, for deployments
// where gateway instances share idempotency state.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

const (
	paymentKeyPrefix = "payment:"
	idemKeyPrefix    = "idempotency:"
)

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Insert(ctx context.Context, p *paymentmodel.Payment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}
	return s.client.Set(ctx, paymentKeyPrefix+p.ID, data, 0).Err()
}

// BindIdempotencyKey uses SETNX so the first writer of a key wins; a
// concurrent duplicate simply keeps the earlier binding.
func (s *Store) BindIdempotencyKey(ctx context.Context, key string, p *paymentmodel.Payment) error {
	if key == "" {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}
	return s.client.SetNX(ctx, idemKeyPrefix+key, data, 0).Err()
}

func (s *Store) GetByID(ctx context.Context, id string) (*paymentmodel.Payment, error) {
	return s.get(ctx, paymentKeyPrefix+id)
}

func (s *Store) GetByIdempotencyKey(ctx context.Context, key string) (*paymentmodel.Payment, error) {
	return s.get(ctx, idemKeyPrefix+key)
}

func (s *Store) get(ctx context.Context, key string) (*paymentmodel.Payment, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p paymentmodel.Payment
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, fmt.Errorf("unmarshal payment: %w", err)
	}
	return &p, nil
}
