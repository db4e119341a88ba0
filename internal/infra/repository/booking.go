package repository

import (
	"context"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/infra/repository/converter"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (uuid.UUID, error)
	CreateBookingItems(ctx context.Context, db sqlc.DBTX, arg []sqlc.CreateBookingItemsParams) (int64, error)
	GetBookingByCartID(ctx context.Context, db sqlc.DBTX, cartID uuid.UUID) (sqlc.Booking, error)
	LockBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Booking, error)
	ListBookingItems(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.BookingItem, error)
	UpdateBookingStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (bool, error) {
	params, err := converter.BookingToCreateParams(b)
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode booking", err)
	}

	if _, err := r.queries.CreateBooking(ctx, r.db, params); err != nil {
		// ON CONFLICT (cart_id) DO NOTHING returns no row
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to create booking", err)
	}

	n, err := r.queries.CreateBookingItems(ctx, r.db, converter.BookingItemsToParams(b))
	if err != nil {
		return false, infra.WrapRepoErr("failed to create booking items", err)
	}
	if int(n) != len(b.Items()) {
		return false, infra.WrapRepoErr("booking items partially written", nil)
	}

	return true, nil
}

func (r *BookingRepository) FindByCartID(ctx context.Context, cartID uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByCartID(ctx, r.db, cartID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by cart ID", err)
	}
	return r.hydrate(ctx, row)
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.LockBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return r.hydrate(ctx, row)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	n, err := r.queries.UpdateBookingStatus(ctx, r.db, converter.BookingStatusToParams(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) hydrate(ctx context.Context, row sqlc.Booking) (*booking.Booking, error) {
	items, err := r.queries.ListBookingItems(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking items", err)
	}
	b, err := converter.BookingFromRow(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDataCorrupted)
	}
	return b, nil
}
