package shared

import (
	"context"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/cart"
	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Repositories bound to the pool, each statement in its own implicit transaction
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Carts() CartRepository
	Inventory() InventoryLedger
	PaymentEvents() PaymentEventRepository
	Notifications() NotificationRepository
	Users() UserRepository
}

type BookingRepository interface {
	// Create inserts b unless a booking for the same cart already exists, in
	// which case it reports created=false and writes nothing.
	Create(ctx context.Context, b *booking.Booking) (created bool, err error)
	FindByCartID(ctx context.Context, cartID uuid.UUID) (*booking.Booking, error)
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*cart.Snapshot, error)
	LockByID(ctx context.Context, id uuid.UUID) (*cart.Snapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InventoryLedger interface {
	// ApplyPurchase either applies every adjustment or none of them. A shortfall
	// is reported in the outcome, not as an error.
	ApplyPurchase(ctx context.Context, adjs []inventory.Adjustment) (inventory.Outcome, error)
}

type PaymentEventRepository interface {
	Claim(ctx context.Context, evt payment.CheckoutCompleted, now time.Time) (claimed bool, err error)
	Complete(ctx context.Context, eventID string, status payment.InboxStatus, bookingID *uuid.UUID, now time.Time) error
	RecordFailure(ctx context.Context, evt payment.CheckoutCompleted, reason string, now time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
}
