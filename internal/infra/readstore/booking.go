package readstore

import (
	"context"
	"encoding/json"

	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Booking, error)
	ListBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsParams) ([]sqlc.Booking, error)
	CountBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.CountBookingsParams) (int64, error)
	ListBookingItems(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.BookingItem, error)
	ListBookingItemsByBookingIDs(ctx context.Context, db sqlc.DBTX, bookingIds []uuid.UUID) ([]sqlc.BookingItem, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	items, err := r.queries.ListBookingItems(ctx, r.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking items", err)
	}

	return toBookingView(row, items)
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter, limit, offset int32) ([]*queries.BookingView, error) {
	f := toFilterParams(filter)
	rows, err := r.queries.ListBookings(ctx, r.db, sqlc.ListBookingsParams{
		UserID:            f.UserID,
		IsPaid:            f.IsPaid,
		IsDelivered:       f.IsDelivered,
		PaymentMethodType: f.PaymentMethodType,
		PageLimit:         limit,
		PageOffset:        offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	if len(rows) == 0 {
		return []*queries.BookingView{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	itemRows, err := r.queries.ListBookingItemsByBookingIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking items", err)
	}
	byBooking := make(map[uuid.UUID][]sqlc.BookingItem, len(rows))
	for _, it := range itemRows {
		byBooking[it.BookingID] = append(byBooking[it.BookingID], it)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		view, err := toBookingView(row, byBooking[row.ID])
		if err != nil {
			return nil, err
		}
		result[i] = view
	}
	return result, nil
}

func (r *BookingReadStore) Count(ctx context.Context, filter queries.BookingFilter) (int64, error) {
	n, err := r.queries.CountBookings(ctx, r.db, toFilterParams(filter))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	return n, nil
}

func toFilterParams(filter queries.BookingFilter) sqlc.CountBookingsParams {
	return sqlc.CountBookingsParams{
		UserID:            pgconv.UUIDPtrToPgtype(filter.UserID),
		IsPaid:            pgconv.BoolPtrToPgtype(filter.IsPaid),
		IsDelivered:       pgconv.BoolPtrToPgtype(filter.IsDelivered),
		PaymentMethodType: pgconv.StringPtrToPgtype(filter.PaymentMethodType),
	}
}

func toBookingView(row sqlc.Booking, itemRows []sqlc.BookingItem) (*queries.BookingView, error) {
	total, err := pgconv.DecimalFromNumeric(row.TotalBookingPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total_booking_price", err, infra.KindDataCorrupted)
	}
	tax, err := pgconv.DecimalFromNumeric(row.TaxPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid tax_price", err, infra.KindDataCorrupted)
	}
	shipping, err := pgconv.DecimalFromNumeric(row.ShippingPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid shipping_price", err, infra.KindDataCorrupted)
	}

	var raw struct {
		Details    string `json:"details"`
		Phone      string `json:"phone"`
		City       string `json:"city"`
		PostalCode string `json:"postalCode"`
	}
	if err := json.Unmarshal(row.ShippingAddress, &raw); err != nil {
		return nil, infra.WrapRepoErr("invalid shipping_address", err, infra.KindDataCorrupted)
	}
	addr := queries.ShippingAddressView(raw)

	items := make([]queries.BookingItemView, len(itemRows))
	for i, it := range itemRows {
		price, err := pgconv.DecimalFromNumeric(it.UnitPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid unit_price", err, infra.KindDataCorrupted)
		}
		items[i] = queries.BookingItemView{
			EventID:   it.EventID,
			Quantity:  it.Quantity,
			UnitPrice: price,
		}
	}

	return &queries.BookingView{
		ID:                row.ID,
		UserID:            row.UserID,
		CartID:            row.CartID,
		Items:             items,
		TotalBookingPrice: total,
		TaxPrice:          tax,
		ShippingPrice:     shipping,
		ShippingAddress:   addr,
		PaymentMethodType: row.PaymentMethodType,
		IsPaid:            row.IsPaid,
		PaidAt:            pgconv.TimePtrFromPgtype(row.PaidAt),
		IsDelivered:       row.IsDelivered,
		DeliveredAt:       pgconv.TimePtrFromPgtype(row.DeliveredAt),
		InventoryStatus:   row.InventoryStatus,
		PaymentReference:  pgconv.StringPtrFromPgtype(row.PaymentReference),
		BookedAt:          pgconv.TimeFromPgtype(row.BookedAt),
		CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:         pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
