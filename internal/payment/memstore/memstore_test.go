package memstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentmodel "github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-gateway/internal/payment/memstore"
)

func TestMemstore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Memstore Suite")
}

var _ = Describe("Store", func() {
	var (
		store *memstore.Store
		ctx   context.Context
	)

	newRecord := func(id string) *paymentmodel.Payment {
		req := paymentmodel.PaymentRequest{
			CardNumber:  "1234567890123456",
			ExpiryMonth: 4,
			ExpiryYear:  2030,
			Currency:    "USD",
			Amount:      100,
			CVV:         "123",
		}
		return paymentmodel.NewPayment(id, req, paymentmodel.StatusAuthorized)
	}

	BeforeEach(func() {
		store = memstore.New()
		ctx = context.Background()
	})

	It("should return an inserted record by id", func() {
		record := newRecord("pay-1")
		Expect(store.Insert(ctx, record)).To(Succeed())

		found, err := store.GetByID(ctx, "pay-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(found).To(Equal(record))
	})

	It("should return nil without error for an unknown id", func() {
		found, err := store.GetByID(ctx, "missing")
		Expect(err).ToNot(HaveOccurred())
		Expect(found).To(BeNil())
	})

	It("should return a bound record by idempotency key", func() {
		record := newRecord("pay-1")
		Expect(store.Insert(ctx, record)).To(Succeed())
		Expect(store.BindIdempotencyKey(ctx, "key-1", record)).To(Succeed())

		found, err := store.GetByIdempotencyKey(ctx, "key-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(found).To(Equal(record))
	})

	It("should treat an empty key binding as a no-op", func() {
		record := newRecord("pay-1")
		Expect(store.BindIdempotencyKey(ctx, "", record)).To(Succeed())

		found, err := store.GetByIdempotencyKey(ctx, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(found).To(BeNil())
	})

	It("should return nil without error for an unknown key", func() {
		found, err := store.GetByIdempotencyKey(ctx, "missing")
		Expect(err).ToNot(HaveOccurred())
		Expect(found).To(BeNil())
	})

	It("should handle concurrent inserts", func() {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer GinkgoRecover()
				defer wg.Done()
				id := fmt.Sprintf("pay-%d", n)
				Expect(store.Insert(ctx, newRecord(id))).To(Succeed())
			}(i)
		}
		wg.Wait()

		for i := 0; i < 20; i++ {
			found, err := store.GetByID(ctx, fmt.Sprintf("pay-%d", i))
			Expect(err).ToNot(HaveOccurred())
			Expect(found).ToNot(BeNil())
		}
	})
})
