package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/cart"
	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/queries"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckoutSettings are the operator-controlled knobs of a checkout.
type CheckoutSettings struct {
	Pricing       booking.Pricing
	CashPolicy    booking.CashPaymentPolicy
	PublicBaseURL string
}

type CashBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type CheckoutCommands interface {
	CreateCashBooking(ctx context.Context, buyerID, cartID uuid.UUID, addr booking.ShippingAddress) (*CashBookingResult, error)
	// CreateCheckoutSession never writes a booking or touches inventory; the
	// webhook conversion does that once the gateway reports payment.
	CreateCheckoutSession(ctx context.Context, buyerID, cartID uuid.UUID, addr booking.ShippingAddress, origin string) (*Session, error)
}

type checkoutCommandsImpl struct {
	uow            shared.UnitOfWork
	gateway        PaymentGateway
	bookingQueries queries.BookingQueries
	settings       CheckoutSettings
	clock          clock.Clock
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	bookingQueries queries.BookingQueries,
	settings CheckoutSettings,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:            uow,
		gateway:        gateway,
		bookingQueries: bookingQueries,
		settings:       settings,
		clock:          clk,
	}
}

func (uc *checkoutCommandsImpl) CreateCashBooking(ctx context.Context, buyerID, cartID uuid.UUID, addr booking.ShippingAddress) (*CashBookingResult, error) {
	var (
		bookingID uuid.UUID
		replayed  bool
	)

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed = false

		snap, err := tx.Carts().LockByID(ctx, cartID)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			id, rerr := replayBooking(ctx, tx, buyerID, cartID)
			if rerr != nil {
				return rerr
			}
			bookingID, replayed = id, true
			return nil
		}
		if err := checkCart(snap, buyerID); err != nil {
			return err
		}

		now := uc.clock.Now()
		b, err := booking.NewCashBooking(booking.CashParams{
			UserID:          buyerID,
			CartID:          cartID,
			Items:           lineItemsFromCart(snap),
			CartPrice:       snap.EffectivePrice(),
			Pricing:         uc.settings.Pricing,
			ShippingAddress: addr,
			Policy:          uc.settings.CashPolicy,
		}, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		created, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !created {
			id, rerr := replayBooking(ctx, tx, buyerID, cartID)
			if rerr != nil {
				return rerr
			}
			bookingID, replayed = id, true
			return nil
		}

		outcome, err := tx.Inventory().ApplyPurchase(ctx, snap.Adjustments())
		if err != nil {
			return markLedgerErr(err)
		}
		if short := outcome.Err(); short != nil {
			return markShortfall(short)
		}

		if err := tx.Carts().Delete(ctx, cartID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := enqueueBookingNotification(ctx, tx, NotificationBookingCreated, b, nil, now); err != nil {
			return err
		}

		bookingID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &CashBookingResult{Booking: view, IsReplayed: replayed}, nil
}

func (uc *checkoutCommandsImpl) CreateCheckoutSession(ctx context.Context, buyerID, cartID uuid.UUID, addr booking.ShippingAddress, origin string) (*Session, error) {
	var (
		snap  *cart.Snapshot
		buyer *user.User
	)
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Carts().FindByID(ctx, cartID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCartNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := checkCart(s, buyerID); err != nil {
			return err
		}

		u, err := tx.Users().FindByID(ctx, buyerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBuyerNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		snap, buyer = s, u
		return nil
	})
	if err != nil {
		return nil, err
	}

	total, err := uc.settings.Pricing.Total(snap.EffectivePrice())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	amount, err := booking.ToMinorUnits(total)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	base := uc.settings.PublicBaseURL
	if base == "" {
		base = origin
	}
	base = strings.TrimRight(base, "/")

	session, err := uc.gateway.CreateCheckoutSession(ctx, SessionRequest{
		CartID:          cartID,
		CustomerEmail:   buyer.Email().Value(),
		CustomerName:    buyer.Name(),
		AmountMinor:     amount,
		ShippingAddress: addr,
		SuccessURL:      base + "/bookings",
		CancelURL:       base + "/cart",
	})
	if err != nil {
		slog.Error("checkout session request failed",
			"cart_id", cartID.String(),
			"error", err.Error())
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}
	return session, nil
}

// replayBooking answers a conversion whose cart is already gone. Only the
// buyer who owns the earlier booking gets it back.
func replayBooking(ctx context.Context, tx shared.Tx, buyerID, cartID uuid.UUID) (uuid.UUID, error) {
	existing, err := tx.Bookings().FindByCartID(ctx, cartID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrCartNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing.UserID() != buyerID {
		return uuid.Nil, ErrCartNotFound
	}
	return existing.ID(), nil
}

func checkCart(snap *cart.Snapshot, buyerID uuid.UUID) error {
	if !snap.OwnedBy(buyerID) {
		return ErrCartNotOwned
	}
	if len(snap.Items) == 0 {
		return ErrCartEmpty
	}
	return nil
}

func lineItemsFromCart(snap *cart.Snapshot) []booking.LineItem {
	items := make([]booking.LineItem, len(snap.Items))
	for i, it := range snap.Items {
		items[i] = booking.LineItem{
			EventID:   it.EventID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return items
}

func markLedgerErr(err error) error {
	if errors.Is(err, inventory.ErrInvalidQuantity) || errors.Is(err, inventory.ErrNoAdjustments) {
		return errs.Mark(err, ErrDomainValidation)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func markShortfall(short error) error {
	if errors.Is(short, inventory.ErrEventNotFound) {
		return errs.Mark(short, ErrEventNotFound)
	}
	return errs.Mark(short, ErrInsufficientInventory)
}
