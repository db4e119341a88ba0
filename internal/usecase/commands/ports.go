package commands

import (
	"context"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/payment"

	"github.com/google/uuid"
)

// SessionRequest is what the gateway needs to host a card payment for a cart.
type SessionRequest struct {
	CartID          uuid.UUID
	CustomerEmail   string
	CustomerName    string
	AmountMinor     int64
	ShippingAddress booking.ShippingAddress
	SuccessURL      string
	CancelURL       string
}

type Session struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}

type WebhookVerifier interface {
	// VerifyEvent checks the signature against the raw payload and decodes it.
	// Only signature problems are returned as errors; decode problems of a
	// signed event are reported in GatewayEvent.Malformed.
	VerifyEvent(payload []byte, signature string) (payment.GatewayEvent, error)
}

type CheckoutPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, evt payment.CheckoutCompleted) error
}
