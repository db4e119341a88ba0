package request

import (
	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type ShippingAddressRequest struct {
	Details    string `json:"details" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
}

func (r CheckoutRequest) ToDomain() (booking.ShippingAddress, error) {
	a := r.ShippingAddress
	return booking.NewShippingAddress(a.Details, a.Phone, a.City, a.PostalCode)
}

type ListBookingsQuery struct {
	Page              int     `form:"page" binding:"omitempty,min=1"`
	Limit             int     `form:"limit" binding:"omitempty,min=1,max=100"`
	UserID            *string `form:"userId" binding:"omitempty,uuid"`
	IsPaid            *bool   `form:"isPaid"`
	IsDelivered       *bool   `form:"isDelivered"`
	PaymentMethodType *string `form:"paymentMethodType" binding:"omitempty,oneof=cash card"`
}

func (q ListBookingsQuery) Filter() queries.BookingFilter {
	f := queries.BookingFilter{
		IsPaid:            q.IsPaid,
		IsDelivered:       q.IsDelivered,
		PaymentMethodType: q.PaymentMethodType,
	}
	if q.UserID != nil {
		// binding already checked the format
		id := uuid.MustParse(*q.UserID)
		f.UserID = &id
	}
	return f
}

func (q ListBookingsQuery) PageRequest() queries.PageRequest {
	return queries.PageRequest{Page: q.Page, Limit: q.Limit}
}
