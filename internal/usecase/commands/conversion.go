package commands

import (
	"context"
	"log/slog"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type ConversionOutcome string

const (
	ConversionConverted      ConversionOutcome = "converted"
	ConversionShort          ConversionOutcome = "short"
	ConversionDuplicate      ConversionOutcome = "duplicate"
	ConversionOrphaned       ConversionOutcome = "orphaned"
	ConversionAlreadyClaimed ConversionOutcome = "already_claimed"
)

type ConversionResult struct {
	Outcome    ConversionOutcome
	BookingID  *uuid.UUID
	Shortfalls []inventory.LineResult
}

type ConversionCommands interface {
	// ConvertCheckout turns a paid checkout into a booking. Replays of the same
	// gateway event or of an already converted cart are no-ops.
	ConvertCheckout(ctx context.Context, evt payment.CheckoutCompleted) (*ConversionResult, error)
	// RecordFailure marks the inbox row failed once retries are exhausted.
	RecordFailure(ctx context.Context, evt payment.CheckoutCompleted, reason string) error
}

type conversionCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewConversionCommands(uow shared.UnitOfWork, clk clock.Clock) ConversionCommands {
	return &conversionCommandsImpl{uow: uow, clock: clk}
}

func (uc *conversionCommandsImpl) ConvertCheckout(ctx context.Context, evt payment.CheckoutCompleted) (*ConversionResult, error) {
	if err := evt.Validate(); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	email, err := user.NewEmail(evt.CustomerEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrBuyerNotFound)
	}

	var result *ConversionResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		claimed, err := tx.PaymentEvents().Claim(ctx, evt, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !claimed {
			result = &ConversionResult{Outcome: ConversionAlreadyClaimed}
			return nil
		}

		snap, err := tx.Carts().LockByID(ctx, evt.CartID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			r, rerr := uc.settleMissingCart(ctx, tx, evt, now)
			if rerr != nil {
				return rerr
			}
			result = r
			return nil
		}

		buyer, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBuyerNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !snap.OwnedBy(buyer.ID()) {
			slog.Warn("checkout customer differs from cart owner",
				"event_id", evt.EventID,
				"cart_id", evt.CartID.String(),
				"buyer_id", buyer.ID().String(),
				"owner_id", snap.OwnerID.String())
		}

		b, err := booking.NewCardBooking(booking.CardParams{
			UserID:          buyer.ID(),
			CartID:          evt.CartID,
			Items:           lineItemsFromCart(snap),
			AmountMinor:     evt.AmountTotal,
			ShippingAddress: evt.ShippingAddress,
			SessionID:       evt.SessionID,
		}, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		created, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !created {
			r, rerr := uc.settleMissingCart(ctx, tx, evt, now)
			if rerr != nil {
				return rerr
			}
			result = r
			return nil
		}

		outcome, err := tx.Inventory().ApplyPurchase(ctx, snap.Adjustments())
		if err != nil {
			return markLedgerErr(err)
		}

		id := b.ID()
		result = &ConversionResult{Outcome: ConversionConverted, BookingID: &id}

		// Payment is captured, so a shortfall keeps the booking and flags it.
		if !outcome.Applied() {
			b.FlagShort()
			if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			shortfalls := outcome.Shortfalls()
			if err := enqueueBookingNotification(ctx, tx, NotificationInventoryShortfall, b, shortfalls, now); err != nil {
				return err
			}
			slog.Warn("paid booking stored without inventory",
				"event_id", evt.EventID,
				"booking_id", id.String(),
				"cart_id", evt.CartID.String(),
				"shortfalls", len(shortfalls))
			result.Outcome = ConversionShort
			result.Shortfalls = shortfalls
		}

		if err := tx.Carts().Delete(ctx, evt.CartID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := enqueueBookingNotification(ctx, tx, NotificationBookingCreated, b, nil, now); err != nil {
			return err
		}
		if err := tx.PaymentEvents().Complete(ctx, evt.EventID, payment.InboxProcessed, &id, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settleMissingCart closes out an event whose cart is gone: either the cart was
// already converted (duplicate) or it never led anywhere (orphaned).
func (uc *conversionCommandsImpl) settleMissingCart(ctx context.Context, tx shared.Tx, evt payment.CheckoutCompleted, now time.Time) (*ConversionResult, error) {
	existing, err := tx.Bookings().FindByCartID(ctx, evt.CartID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if existing != nil {
		id := existing.ID()
		if err := tx.PaymentEvents().Complete(ctx, evt.EventID, payment.InboxDuplicate, &id, now); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		slog.Info("checkout already converted",
			"event_id", evt.EventID,
			"cart_id", evt.CartID.String(),
			"booking_id", id.String())
		return &ConversionResult{Outcome: ConversionDuplicate, BookingID: &id}, nil
	}

	if err := tx.PaymentEvents().Complete(ctx, evt.EventID, payment.InboxOrphaned, nil, now); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	slog.Warn("paid checkout has no cart and no booking",
		"event_id", evt.EventID,
		"session_id", evt.SessionID,
		"cart_id", evt.CartID.String(),
		"amount_total", evt.AmountTotal)
	return &ConversionResult{Outcome: ConversionOrphaned}, nil
}

func (uc *conversionCommandsImpl) RecordFailure(ctx context.Context, evt payment.CheckoutCompleted, reason string) error {
	return uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.PaymentEvents().RecordFailure(ctx, evt, reason, uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		slog.Error("checkout conversion gave up",
			"event_id", evt.EventID,
			"cart_id", evt.CartID.String(),
			"reason", reason)
		return nil
	})
}
