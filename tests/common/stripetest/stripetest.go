package stripetest

import (
	"encoding/json"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Sign builds a Stripe-Signature header for payload signed at ts.
func Sign(payload []byte, secret string, ts time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: ts,
	}).Header
}

type CompletedSession struct {
	EventID       string
	SessionID     string
	CartID        uuid.UUID
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	Address       booking.ShippingAddress
}

// CompletedEvent renders a checkout.session.completed event body.
func CompletedEvent(s CompletedSession) []byte {
	return event(s.EventID, payment.EventTypeCheckoutCompleted, map[string]any{
		"id":                  s.SessionID,
		"object":              "checkout.session",
		"client_reference_id": s.CartID.String(),
		"customer_email":      s.CustomerEmail,
		"amount_total":        s.AmountTotal,
		"currency":            s.Currency,
		"metadata":            payment.ShippingAddressToMetadata(s.Address),
	})
}

func Event(id, eventType string) []byte {
	return event(id, eventType, map[string]any{"id": "obj_" + id, "object": "payment_intent"})
}

func event(id, eventType string, object map[string]any) []byte {
	body, err := json.Marshal(map[string]any{
		"id":          id,
		"object":      "event",
		"type":        eventType,
		"api_version": "2023-10-16",
		"created":     time.Now().Unix(),
		"data":        map[string]any{"object": object},
	})
	if err != nil {
		panic(err)
	}
	return body
}
