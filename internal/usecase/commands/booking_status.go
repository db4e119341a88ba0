package commands

import (
	"context"
	"errors"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/queries"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingStatusCommands interface {
	MarkPaid(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type bookingStatusCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingStatusCommands(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clk clock.Clock) BookingStatusCommands {
	return &bookingStatusCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

func (uc *bookingStatusCommandsImpl) MarkPaid(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return uc.transition(ctx, id, func(b *booking.Booking) error {
		b.MarkPaid(uc.clock.Now())
		return nil
	})
}

func (uc *bookingStatusCommandsImpl) MarkDelivered(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return uc.transition(ctx, id, func(b *booking.Booking) error {
		err := b.MarkDelivered(uc.clock.Now())
		if errors.Is(err, booking.ErrShortBookingNotDeliverable) {
			return errs.Mark(err, ErrInsufficientInventory)
		}
		return err
	})
}

func (uc *bookingStatusCommandsImpl) transition(ctx context.Context, id uuid.UUID, apply func(b *booking.Booking) error) (*queries.BookingView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().LockByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := apply(b); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.bookingQueries.GetByIDSystem(ctx, id)
}
