package commands

import (
	"context"
	"encoding/json"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	NotificationBookingCreated     = "booking_created"
	NotificationInventoryShortfall = "inventory_shortfall"

	notificationTopicBookings = "bookings"
)

type bookingNotification struct {
	BookingID     uuid.UUID       `json:"booking_id"`
	UserID        uuid.UUID       `json:"user_id"`
	PaymentMethod string          `json:"payment_method"`
	Total         string          `json:"total"`
	IsPaid        bool            `json:"is_paid"`
	Shortfalls    []shortfallLine `json:"shortfalls,omitempty"`
}

type shortfallLine struct {
	EventID   uuid.UUID `json:"event_id"`
	Requested int32     `json:"requested"`
	Status    string    `json:"status"`
}

func enqueueBookingNotification(ctx context.Context, tx shared.Tx, kind string, b *booking.Booking, shortfalls []inventory.LineResult, now time.Time) error {
	n := bookingNotification{
		BookingID:     b.ID(),
		UserID:        b.UserID(),
		PaymentMethod: b.PaymentMethod().String(),
		Total:         b.TotalPrice().StringFixed(2),
		IsPaid:        b.IsPaid(),
	}
	for _, s := range shortfalls {
		n.Shortfalls = append(n.Shortfalls, shortfallLine{
			EventID:   s.EventID,
			Requested: s.Requested,
			Status:    string(s.Status),
		})
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return errs.Wrap(err, "failed to encode notification")
	}
	if err := tx.Notifications().CreateJob(ctx, kind, notificationTopicBookings, payload, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
