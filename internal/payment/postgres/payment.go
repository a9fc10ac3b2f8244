package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
	paymentpkg "github.com/frahmantamala/payment-gateway/internal/payment"
)

// PaymentRepository is the durable store. The unique index on
// idempotency_key gives atomic insert-if-absent per key at the database.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.Repository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *paymentmodel.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// BindIdempotencyKey is a no-op here: the key is written as a column of the
// payments row during Insert, so record and binding commit together.
func (r *PaymentRepository) BindIdempotencyKey(ctx context.Context, key string, p *paymentmodel.Payment) error {
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*paymentmodel.Payment, error) {
	var p paymentmodel.Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*paymentmodel.Payment, error) {
	var p paymentmodel.Payment
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
