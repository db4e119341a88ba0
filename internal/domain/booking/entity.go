package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrShortBookingNotDeliverable = errors.New("booking is short on inventory and cannot be delivered")

type Booking struct {
	id               uuid.UUID
	userID           uuid.UUID
	cartID           uuid.UUID
	items            []LineItem
	totalPrice       decimal.Decimal
	taxPrice         decimal.Decimal
	shippingPrice    decimal.Decimal
	shippingAddress  ShippingAddress
	paymentMethod    PaymentMethod
	isPaid           bool
	paidAt           *time.Time
	isDelivered      bool
	deliveredAt      *time.Time
	inventoryStatus  InventoryStatus
	paymentReference *string
	bookedAt         time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

type CashParams struct {
	UserID          uuid.UUID
	CartID          uuid.UUID
	Items           []LineItem
	CartPrice       decimal.Decimal
	Pricing         Pricing
	ShippingAddress ShippingAddress
	Policy          CashPaymentPolicy
}

func NewCashBooking(p CashParams, now time.Time) (*Booking, error) {
	total, err := p.Pricing.Total(p.CartPrice)
	if err != nil {
		return nil, err
	}

	b, err := newBooking(p.UserID, p.CartID, p.Items, total, p.ShippingAddress, PaymentMethodCash, now)
	if err != nil {
		return nil, err
	}
	b.taxPrice = p.Pricing.TaxPrice
	b.shippingPrice = p.Pricing.ShippingPrice

	if p.Policy.PaidOnCreate() {
		b.markPaid(now)
	}
	return b, nil
}

type CardParams struct {
	UserID          uuid.UUID
	CartID          uuid.UUID
	Items           []LineItem
	AmountMinor     int64
	ShippingAddress ShippingAddress
	SessionID       string
}

// NewCardBooking records a booking whose payment the gateway already captured.
// The total is whatever was charged, not a recomputation from the cart.
func NewCardBooking(p CardParams, now time.Time) (*Booking, error) {
	if p.AmountMinor < 0 {
		return nil, ErrNegativeAmount
	}
	ref := strings.TrimSpace(p.SessionID)
	if ref == "" {
		return nil, ErrMissingPaymentRef
	}

	b, err := newBooking(p.UserID, p.CartID, p.Items, FromMinorUnits(p.AmountMinor), p.ShippingAddress, PaymentMethodCard, now)
	if err != nil {
		return nil, err
	}
	b.paymentReference = &ref
	b.markPaid(now)
	return b, nil
}

func newBooking(userID, cartID uuid.UUID, items []LineItem, total decimal.Decimal, addr ShippingAddress, method PaymentMethod, now time.Time) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingBookingOwner
	}
	if cartID == uuid.Nil {
		return nil, ErrMissingCorrelationID
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if total.IsNegative() {
		return nil, ErrNegativeAmount
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Booking{
		id:              uuid.New(),
		userID:          userID,
		cartID:          cartID,
		items:           copied,
		totalPrice:      total,
		taxPrice:        decimal.Zero,
		shippingPrice:   decimal.Zero,
		shippingAddress: addr,
		paymentMethod:   method,
		inventoryStatus: InventoryAllocated,
		bookedAt:        now,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructParams carries persisted state back into an entity.
type ReconstructParams struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CartID           uuid.UUID
	Items            []LineItem
	TotalPrice       decimal.Decimal
	TaxPrice         decimal.Decimal
	ShippingPrice    decimal.Decimal
	ShippingAddress  ShippingAddress
	PaymentMethod    PaymentMethod
	IsPaid           bool
	PaidAt           *time.Time
	IsDelivered      bool
	DeliveredAt      *time.Time
	InventoryStatus  InventoryStatus
	PaymentReference *string
	BookedAt         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:               p.ID,
		userID:           p.UserID,
		cartID:           p.CartID,
		items:            p.Items,
		totalPrice:       p.TotalPrice,
		taxPrice:         p.TaxPrice,
		shippingPrice:    p.ShippingPrice,
		shippingAddress:  p.ShippingAddress,
		paymentMethod:    p.PaymentMethod,
		isPaid:           p.IsPaid,
		paidAt:           p.PaidAt,
		isDelivered:      p.IsDelivered,
		deliveredAt:      p.DeliveredAt,
		inventoryStatus:  p.InventoryStatus,
		paymentReference: p.PaymentReference,
		bookedAt:         p.BookedAt,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

// MarkPaid is idempotent. paidAt never moves backwards.
func (b *Booking) MarkPaid(now time.Time) {
	b.markPaid(now)
}

func (b *Booking) MarkDelivered(now time.Time) error {
	if b.inventoryStatus == InventoryShort {
		return ErrShortBookingNotDeliverable
	}
	b.isDelivered = true
	b.deliveredAt = later(b.deliveredAt, now)
	b.touch(now)
	return nil
}

// FlagShort marks a booking whose units the ledger could not take.
func (b *Booking) FlagShort() {
	b.inventoryStatus = InventoryShort
}

func (b *Booking) markPaid(now time.Time) {
	b.isPaid = true
	b.paidAt = later(b.paidAt, now)
	b.touch(now)
}

func (b *Booking) touch(now time.Time) {
	if now.After(b.updatedAt) {
		b.updatedAt = now
	}
}

func later(current *time.Time, now time.Time) *time.Time {
	if current != nil && !now.After(*current) {
		return current
	}
	t := now
	return &t
}

func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) UserID() uuid.UUID                { return b.userID }
func (b *Booking) CartID() uuid.UUID                { return b.cartID }
func (b *Booking) TotalPrice() decimal.Decimal      { return b.totalPrice }
func (b *Booking) TaxPrice() decimal.Decimal        { return b.taxPrice }
func (b *Booking) ShippingPrice() decimal.Decimal   { return b.shippingPrice }
func (b *Booking) ShippingAddress() ShippingAddress { return b.shippingAddress }
func (b *Booking) PaymentMethod() PaymentMethod     { return b.paymentMethod }
func (b *Booking) IsPaid() bool                     { return b.isPaid }
func (b *Booking) PaidAt() *time.Time               { return b.paidAt }
func (b *Booking) IsDelivered() bool                { return b.isDelivered }
func (b *Booking) DeliveredAt() *time.Time          { return b.deliveredAt }
func (b *Booking) InventoryStatus() InventoryStatus { return b.inventoryStatus }
func (b *Booking) PaymentReference() *string        { return b.paymentReference }
func (b *Booking) BookedAt() time.Time              { return b.bookedAt }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }

func (b *Booking) Items() []LineItem {
	out := make([]LineItem, len(b.items))
	copy(out, b.items)
	return out
}
