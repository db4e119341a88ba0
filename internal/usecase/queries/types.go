package queries

import (
	"time"

	"ticket-checkout/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	CartID            uuid.UUID
	Items             []BookingItemView
	TotalBookingPrice decimal.Decimal
	TaxPrice          decimal.Decimal
	ShippingPrice     decimal.Decimal
	ShippingAddress   ShippingAddressView
	PaymentMethodType string
	IsPaid            bool
	PaidAt            *time.Time
	IsDelivered       bool
	DeliveredAt       *time.Time
	InventoryStatus   string
	PaymentReference  *string
	BookedAt          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type BookingItemView struct {
	EventID   uuid.UUID
	Quantity  int32
	UnitPrice decimal.Decimal
}

type ShippingAddressView struct {
	Details    string
	Phone      string
	City       string
	PostalCode string
}

// Actor is the authenticated caller a query runs on behalf of.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

type BookingFilter struct {
	UserID            *uuid.UUID
	IsPaid            *bool
	IsDelivered       *bool
	PaymentMethodType *string
}

type PageRequest struct {
	Page  int
	Limit int
}

type PaginationResult struct {
	CurrentPage   int
	Limit         int
	NumberOfPages int
	Next          *int
	Prev          *int
}

type BookingPage struct {
	Results    int
	Pagination PaginationResult
	Data       []*BookingView
}
