package payment

import (
	"errors"
	"strings"

	"ticket-checkout/internal/domain/booking"

	"github.com/google/uuid"
)

const EventTypeCheckoutCompleted = "checkout.session.completed"

var (
	ErrMissingEventID       = errors.New("gateway event id is required")
	ErrMissingSessionID     = errors.New("checkout session id is required")
	ErrInvalidCorrelationID = errors.New("client reference id is not a cart id")
	ErrMissingCustomerEmail = errors.New("checkout session has no customer email")
)

// Metadata keys the checkout session carries the shipping address under.
const (
	MetadataDetails    = "details"
	MetadataPhone      = "phone"
	MetadataCity       = "city"
	MetadataPostalCode = "postalCode"
)

// GatewayEvent is a verified webhook notification. Completed is set only for
// checkout.session.completed.
type GatewayEvent struct {
	ID        string
	Type      string
	Completed *CheckoutCompleted
	// Malformed is set when a signed checkout.session.completed could not be
	// decoded. Completed then holds whatever identifiers were readable.
	Malformed error
}

// CheckoutCompleted is the queued hand-off between webhook intake and booking
// conversion.
type CheckoutCompleted struct {
	EventID         string                  `json:"event_id"`
	SessionID       string                  `json:"session_id"`
	CartID          uuid.UUID               `json:"cart_id"`
	CustomerEmail   string                  `json:"customer_email"`
	AmountTotal     int64                   `json:"amount_total"`
	Currency        string                  `json:"currency"`
	ShippingAddress booking.ShippingAddress `json:"shipping_address"`
}

func (c CheckoutCompleted) Validate() error {
	if strings.TrimSpace(c.EventID) == "" {
		return ErrMissingEventID
	}
	if strings.TrimSpace(c.SessionID) == "" {
		return ErrMissingSessionID
	}
	if c.CartID == uuid.Nil {
		return ErrInvalidCorrelationID
	}
	if strings.TrimSpace(c.CustomerEmail) == "" {
		return ErrMissingCustomerEmail
	}
	if c.AmountTotal < 0 {
		return booking.ErrNegativeAmount
	}
	return nil
}

func ShippingAddressFromMetadata(md map[string]string) booking.ShippingAddress {
	return booking.ShippingAddress{
		Details:    md[MetadataDetails],
		Phone:      md[MetadataPhone],
		City:       md[MetadataCity],
		PostalCode: md[MetadataPostalCode],
	}
}

func ShippingAddressToMetadata(a booking.ShippingAddress) map[string]string {
	md := map[string]string{
		MetadataDetails: a.Details,
		MetadataPhone:   a.Phone,
		MetadataCity:    a.City,
	}
	if a.PostalCode != "" {
		md[MetadataPostalCode] = a.PostalCode
	}
	return md
}

// InboxStatus tracks what became of a gateway event.
type InboxStatus string

const (
	InboxReceived  InboxStatus = "received"
	InboxProcessed InboxStatus = "processed"
	InboxDuplicate InboxStatus = "duplicate"
	InboxOrphaned  InboxStatus = "orphaned"
	InboxFailed    InboxStatus = "failed"
)
