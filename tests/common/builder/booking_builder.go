//go:build unit || e2e

package builder

import (
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/cart"
	reqdto "ticket-checkout/internal/handler/dto/request"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CartID          uuid.UUID
	Items           []booking.LineItem
	ShippingAddress booking.ShippingAddress
	PaymentMethod   booking.PaymentMethod
	IsPaid          bool
	IsDelivered     bool
	InventoryStatus booking.InventoryStatus
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:     uuid.New(),
		UserID: uuid.New(),
		CartID: uuid.New(),
		Items: []booking.LineItem{
			{EventID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("150.00")},
		},
		ShippingAddress: booking.ShippingAddress{
			Details:    "12 Tahrir St",
			Phone:      "01000000000",
			City:       "Cairo",
			PostalCode: "11511",
		},
		PaymentMethod:   booking.PaymentMethodCash,
		InventoryStatus: booking.InventoryAllocated,
		Now:             time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity)))
	}
	return total
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	var paidAt, deliveredAt *time.Time
	if b.IsPaid {
		t := b.Now
		paidAt = &t
	}
	if b.IsDelivered {
		t := b.Now
		deliveredAt = &t
	}
	var ref *string
	if b.PaymentMethod == booking.PaymentMethodCard {
		s := "cs_test_" + b.CartID.String()
		ref = &s
	}
	return booking.Reconstruct(booking.ReconstructParams{
		ID:               b.ID,
		UserID:           b.UserID,
		CartID:           b.CartID,
		Items:            b.Items,
		TotalPrice:       b.Total(),
		TaxPrice:         decimal.Zero,
		ShippingPrice:    decimal.Zero,
		ShippingAddress:  b.ShippingAddress,
		PaymentMethod:    b.PaymentMethod,
		IsPaid:           b.IsPaid,
		PaidAt:           paidAt,
		IsDelivered:      b.IsDelivered,
		DeliveredAt:      deliveredAt,
		InventoryStatus:  b.InventoryStatus,
		PaymentReference: ref,
		BookedAt:         b.Now,
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	})
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	items := make([]queries.BookingItemView, len(b.Items))
	for i, it := range b.Items {
		items[i] = queries.BookingItemView{EventID: it.EventID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	v := &queries.BookingView{
		ID:                b.ID,
		UserID:            b.UserID,
		CartID:            b.CartID,
		Items:             items,
		TotalBookingPrice: b.Total(),
		TaxPrice:          decimal.Zero,
		ShippingPrice:     decimal.Zero,
		ShippingAddress: queries.ShippingAddressView{
			Details:    b.ShippingAddress.Details,
			Phone:      b.ShippingAddress.Phone,
			City:       b.ShippingAddress.City,
			PostalCode: b.ShippingAddress.PostalCode,
		},
		PaymentMethodType: string(b.PaymentMethod),
		IsPaid:            b.IsPaid,
		IsDelivered:       b.IsDelivered,
		InventoryStatus:   string(b.InventoryStatus),
		BookedAt:          b.Now,
		CreatedAt:         b.Now,
		UpdatedAt:         b.Now,
	}
	if b.IsPaid {
		t := b.Now
		v.PaidAt = &t
	}
	if b.IsDelivered {
		t := b.Now
		v.DeliveredAt = &t
	}
	return v
}

func (b *BookingBuilder) BuildCart() *cart.Snapshot {
	items := make([]cart.Item, len(b.Items))
	for i, it := range b.Items {
		items[i] = cart.Item{EventID: it.EventID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return &cart.Snapshot{
		ID:             b.CartID,
		OwnerID:        b.UserID,
		Items:          items,
		TotalCartPrice: b.Total(),
	}
}

func (b *BookingBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		ShippingAddress: reqdto.ShippingAddressRequest{
			Details:    b.ShippingAddress.Details,
			Phone:      b.ShippingAddress.Phone,
			City:       b.ShippingAddress.City,
			PostalCode: b.ShippingAddress.PostalCode,
		},
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithCartID(id uuid.UUID) *BookingBuilder {
	b.CartID = id
	return b
}

func (b *BookingBuilder) WithItems(items ...booking.LineItem) *BookingBuilder {
	b.Items = items
	return b
}

func (b *BookingBuilder) AsCard() *BookingBuilder {
	b.PaymentMethod = booking.PaymentMethodCard
	b.IsPaid = true
	return b
}

func (b *BookingBuilder) AsPaid() *BookingBuilder {
	b.IsPaid = true
	return b
}

func (b *BookingBuilder) AsShort() *BookingBuilder {
	b.InventoryStatus = booking.InventoryShort
	return b
}
