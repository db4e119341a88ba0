package cart

import (
	"errors"

	"ticket-checkout/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartEmpty    = errors.New("cart has no items")
)

type Item struct {
	EventID   uuid.UUID
	Quantity  int32
	UnitPrice decimal.Decimal
}

// Snapshot is a read-only view of a buyer's cart at conversion time. Carts are
// owned by another module; bookings only read them and delete them on hand-off.
type Snapshot struct {
	ID                      uuid.UUID
	OwnerID                 uuid.UUID
	Items                   []Item
	TotalCartPrice          decimal.Decimal
	TotalPriceAfterDiscount *decimal.Decimal
}

// EffectivePrice is the discounted total when a coupon was applied.
func (s *Snapshot) EffectivePrice() decimal.Decimal {
	if s.TotalPriceAfterDiscount != nil {
		return *s.TotalPriceAfterDiscount
	}
	return s.TotalCartPrice
}

func (s *Snapshot) OwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

func (s *Snapshot) Adjustments() []inventory.Adjustment {
	out := make([]inventory.Adjustment, len(s.Items))
	for i, it := range s.Items {
		out[i] = inventory.Adjustment{EventID: it.EventID, Quantity: it.Quantity}
	}
	return out
}
