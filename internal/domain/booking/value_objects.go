package booking

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoLineItems          = errors.New("booking must have at least one line item")
	ErrInvalidLineQuantity  = errors.New("line item quantity must be positive")
	ErrNegativeUnitPrice    = errors.New("line item unit price must not be negative")
	ErrIncompleteAddress    = errors.New("shipping address requires details, phone and city")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrAmountOutOfRange     = errors.New("amount does not fit in minor units")
	ErrMissingPaymentRef    = errors.New("card booking requires a payment reference")
	ErrMissingBookingOwner  = errors.New("booking requires a user")
	ErrMissingCorrelationID = errors.New("booking requires a cart id")
)

type ShippingAddress struct {
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

func NewShippingAddress(details, phone, city, postalCode string) (ShippingAddress, error) {
	a := ShippingAddress{
		Details:    strings.TrimSpace(details),
		Phone:      strings.TrimSpace(phone),
		City:       strings.TrimSpace(city),
		PostalCode: strings.TrimSpace(postalCode),
	}
	if a.Details == "" || a.Phone == "" || a.City == "" {
		return ShippingAddress{}, ErrIncompleteAddress
	}
	return a, nil
}

type LineItem struct {
	EventID   uuid.UUID
	Quantity  int32
	UnitPrice decimal.Decimal
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return ErrInvalidLineQuantity
		}
		if it.UnitPrice.IsNegative() {
			return ErrNegativeUnitPrice
		}
	}
	return nil
}
