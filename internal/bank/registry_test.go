package bank_test

import (
	"context"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/bank"
)

func TestBank(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bank Suite")
}

type fakeClient struct {
	name string
}

func (c *fakeClient) Authorize(ctx context.Context, req bank.BankRequest) (*bank.BankResponse, error) {
	return &bank.BankResponse{Authorized: true, AuthorizationCode: "auth_" + c.name}, nil
}

func (c *fakeClient) Supports(provider string) bool {
	return strings.EqualFold(provider, c.name)
}

var _ = Describe("Registry", func() {
	var registry *bank.Registry

	BeforeEach(func() {
		registry = bank.NewRegistry()
		Expect(registry.Register("SIMULATOR", &fakeClient{name: "SIMULATOR"})).To(Succeed())
		Expect(registry.Register("STRIPE", &fakeClient{name: "STRIPE"})).To(Succeed())
	})

	It("should resolve a registered provider", func() {
		client, err := registry.Resolve("STRIPE")
		Expect(err).ToNot(HaveOccurred())
		Expect(client.Supports("STRIPE")).To(BeTrue())
	})

	It("should resolve case-insensitively", func() {
		client, err := registry.Resolve("simulator")
		Expect(err).ToNot(HaveOccurred())
		Expect(client.Supports("SIMULATOR")).To(BeTrue())
	})

	It("should default an empty provider to the simulator", func() {
		client, err := registry.Resolve("")
		Expect(err).ToNot(HaveOccurred())
		Expect(client.Supports(bank.ProviderSimulator)).To(BeTrue())
	})

	It("should fail for an unknown provider", func() {
		_, err := registry.Resolve("VISA")

		appErr, ok := errors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeUnsupportedProvider))
	})

	It("should refuse a duplicate registration at startup", func() {
		err := registry.Register("STRIPE", &fakeClient{name: "STRIPE"})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("duplicate"))
	})

	It("should refuse a client that does not claim the provider name", func() {
		err := registry.Register("VISA", &fakeClient{name: "STRIPE"})
		Expect(err).To(HaveOccurred())
	})
})
