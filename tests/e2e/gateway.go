//go:build e2e

package e2e

import (
	"context"
	"sync"

	"ticket-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

// FakeGateway stands in for hosted checkout session creation. Webhook
// verification still runs through the real Stripe SDK.
type FakeGateway struct {
	mu       sync.Mutex
	requests []commands.SessionRequest
	Err      error
}

func (g *FakeGateway) CreateCheckoutSession(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.requests = append(g.requests, req)
	id := "cs_test_" + uuid.NewString()
	return &commands.Session{ID: id, URL: "https://checkout.stripe.com/c/pay/" + id}, nil
}

func (g *FakeGateway) Requests() []commands.SessionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]commands.SessionRequest(nil), g.requests...)
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = nil
	g.Err = nil
}
