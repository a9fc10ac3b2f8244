package bank

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/payment-gateway/internal"
)

// Registry resolves a provider name to the client that will handle the
// payment. It is populated once at startup and read-only afterwards, so
// request-time resolution is a single map lookup.
type Registry struct {
	clients map[string]AcquiringBankClient
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]AcquiringBankClient)}
}

// Register binds a provider name to a client. Two clients claiming the same
// name is a configuration error and must fail startup, not a request.
func (r *Registry) Register(provider string, client AcquiringBankClient) error {
	name := strings.ToUpper(provider)
	if !client.Supports(name) {
		return fmt.Errorf("client does not support provider %q", provider)
	}
	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("duplicate registration for provider %q", provider)
	}
	r.clients[name] = client
	return nil
}

// Resolve returns the client for the given provider name. An empty name
// falls back to the simulator.
func (r *Registry) Resolve(provider string) (AcquiringBankClient, error) {
	name := provider
	if name == "" {
		name = ProviderSimulator
	}

	client, ok := r.clients[strings.ToUpper(name)]
	if !ok {
		return nil, errors.ErrUnsupportedProvider.WithDetails(map[string]string{"provider": name})
	}
	return client, nil
}

// Providers lists the registered provider names, for startup logging.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}
