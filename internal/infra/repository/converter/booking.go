package converter

import (
	"encoding/json"
	"fmt"

	"ticket-checkout/internal/domain/booking"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"
)

func BookingToCreateParams(b *booking.Booking) (sqlc.CreateBookingParams, error) {
	addr, err := json.Marshal(b.ShippingAddress())
	if err != nil {
		return sqlc.CreateBookingParams{}, fmt.Errorf("marshal shipping address: %w", err)
	}

	return sqlc.CreateBookingParams{
		ID:                b.ID(),
		UserID:            b.UserID(),
		CartID:            b.CartID(),
		TotalBookingPrice: pgconv.DecimalToNumeric(b.TotalPrice()),
		TaxPrice:          pgconv.DecimalToNumeric(b.TaxPrice()),
		ShippingPrice:     pgconv.DecimalToNumeric(b.ShippingPrice()),
		ShippingAddress:   addr,
		PaymentMethodType: b.PaymentMethod().String(),
		IsPaid:            b.IsPaid(),
		PaidAt:            pgconv.TimePtrToPgtype(b.PaidAt()),
		IsDelivered:       b.IsDelivered(),
		DeliveredAt:       pgconv.TimePtrToPgtype(b.DeliveredAt()),
		InventoryStatus:   b.InventoryStatus().String(),
		PaymentReference:  pgconv.StringPtrToPgtype(b.PaymentReference()),
		BookedAt:          pgconv.TimeToPgtype(b.BookedAt()),
		CreatedAt:         pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:         pgconv.TimeToPgtype(b.UpdatedAt()),
	}, nil
}

func BookingItemsToParams(b *booking.Booking) []sqlc.CreateBookingItemsParams {
	items := b.Items()
	params := make([]sqlc.CreateBookingItemsParams, len(items))
	for i, it := range items {
		params[i] = sqlc.CreateBookingItemsParams{
			BookingID: b.ID(),
			Position:  int32(i), // #nosec G115 -- bounded by cart size
			EventID:   it.EventID,
			Quantity:  it.Quantity,
			UnitPrice: pgconv.DecimalToNumeric(it.UnitPrice),
		}
	}
	return params
}

func BookingStatusToParams(b *booking.Booking) sqlc.UpdateBookingStatusParams {
	return sqlc.UpdateBookingStatusParams{
		ID:              b.ID(),
		IsPaid:          b.IsPaid(),
		PaidAt:          pgconv.TimePtrToPgtype(b.PaidAt()),
		IsDelivered:     b.IsDelivered(),
		DeliveredAt:     pgconv.TimePtrToPgtype(b.DeliveredAt()),
		InventoryStatus: b.InventoryStatus().String(),
		UpdatedAt:       pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingFromRow(row sqlc.Booking, itemRows []sqlc.BookingItem) (*booking.Booking, error) {
	total, err := pgconv.DecimalFromNumeric(row.TotalBookingPrice)
	if err != nil {
		return nil, fmt.Errorf("total_booking_price: %w", err)
	}
	tax, err := pgconv.DecimalFromNumeric(row.TaxPrice)
	if err != nil {
		return nil, fmt.Errorf("tax_price: %w", err)
	}
	shipping, err := pgconv.DecimalFromNumeric(row.ShippingPrice)
	if err != nil {
		return nil, fmt.Errorf("shipping_price: %w", err)
	}

	var addr booking.ShippingAddress
	if err := json.Unmarshal(row.ShippingAddress, &addr); err != nil {
		return nil, fmt.Errorf("shipping_address: %w", err)
	}

	method, err := booking.NewPaymentMethod(row.PaymentMethodType)
	if err != nil {
		return nil, err
	}
	status, err := booking.NewInventoryStatus(row.InventoryStatus)
	if err != nil {
		return nil, err
	}

	items, err := LineItemsFromRows(itemRows)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(booking.ReconstructParams{
		ID:               row.ID,
		UserID:           row.UserID,
		CartID:           row.CartID,
		Items:            items,
		TotalPrice:       total,
		TaxPrice:         tax,
		ShippingPrice:    shipping,
		ShippingAddress:  addr,
		PaymentMethod:    method,
		IsPaid:           row.IsPaid,
		PaidAt:           pgconv.TimePtrFromPgtype(row.PaidAt),
		IsDelivered:      row.IsDelivered,
		DeliveredAt:      pgconv.TimePtrFromPgtype(row.DeliveredAt),
		InventoryStatus:  status,
		PaymentReference: pgconv.StringPtrFromPgtype(row.PaymentReference),
		BookedAt:         pgconv.TimeFromPgtype(row.BookedAt),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func LineItemsFromRows(rows []sqlc.BookingItem) ([]booking.LineItem, error) {
	items := make([]booking.LineItem, len(rows))
	for i, r := range rows {
		price, err := pgconv.DecimalFromNumeric(r.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("booking_items.unit_price: %w", err)
		}
		items[i] = booking.LineItem{EventID: r.EventID, Quantity: r.Quantity, UnitPrice: price}
	}
	return items, nil
}
