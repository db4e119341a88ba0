package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway hosts card checkouts on Stripe and verifies its webhooks.
type StripeGateway struct {
	sessions      session.Client
	webhookSecret string
	currency      string
}

var (
	_ commands.PaymentGateway  = (*StripeGateway)(nil)
	_ commands.WebhookVerifier = (*StripeGateway)(nil)
)

func NewStripeGateway(cfg config.PaymentConfig) *StripeGateway {
	return NewStripeGatewayWithBackend(cfg, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
	}))
}

// NewStripeGatewayWithBackend lets tests point the client at a fake API.
func NewStripeGatewayWithBackend(cfg config.PaymentConfig, backend stripe.Backend) *StripeGateway {
	return &StripeGateway{
		sessions:      session.Client{B: backend, Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
		currency:      strings.ToLower(cfg.Currency),
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req commands.SessionRequest) (*commands.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		ClientReferenceID:  stripe.String(req.CartID.String()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.CustomerName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range payment.ShippingAddressToMetadata(req.ShippingAddress) {
		params.AddMetadata(k, v)
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "stripe: create checkout session")
	}
	return &commands.Session{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (payment.GatewayEvent, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return payment.GatewayEvent{}, err
	}

	out := payment.GatewayEvent{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != payment.EventTypeCheckoutCompleted {
		return out, nil
	}

	// The signature already passed, so decode problems belong to the event
	// and not to the delivery.
	completed, err := decodeCompletedSession(evt.ID, evt.Data.Raw)
	out.Completed = completed
	out.Malformed = err
	return out, nil
}

// decodeCompletedSession always returns the event id, plus the session and cart
// ids when they can be read, so a bad event can still be recorded.
func decodeCompletedSession(eventID string, raw json.RawMessage) (*payment.CheckoutCompleted, error) {
	var s stripe.CheckoutSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return &payment.CheckoutCompleted{EventID: eventID}, fmt.Errorf("decode checkout session: %w", err)
	}

	cartID, err := uuid.Parse(s.ClientReferenceID)
	if err != nil {
		return &payment.CheckoutCompleted{EventID: eventID, SessionID: s.ID}, payment.ErrInvalidCorrelationID
	}

	email := s.CustomerEmail
	if email == "" && s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}

	completed := &payment.CheckoutCompleted{
		EventID:         eventID,
		SessionID:       s.ID,
		CartID:          cartID,
		CustomerEmail:   email,
		AmountTotal:     s.AmountTotal,
		Currency:        string(s.Currency),
		ShippingAddress: payment.ShippingAddressFromMetadata(s.Metadata),
	}
	if err := completed.Validate(); err != nil {
		return completed, err
	}
	return completed, nil
}
