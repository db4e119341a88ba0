package response

import (
	"fmt"
	"time"

	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

const StatusSuccess = "success"

type BookingResponse struct {
	ID                uuid.UUID               `json:"id"`
	UserID            uuid.UUID               `json:"user"`
	CartID            uuid.UUID               `json:"cartId"`
	Items             []BookingItemResponse   `json:"bookingItems"`
	TotalBookingPrice float64                 `json:"totalBookingPrice"`
	TaxPrice          float64                 `json:"taxPrice"`
	ShippingPrice     float64                 `json:"shippingPrice"`
	ShippingAddress   ShippingAddressResponse `json:"shippingAddress"`
	PaymentMethodType string                  `json:"paymentMethodType"`
	IsPaid            bool                    `json:"isPaid"`
	PaidAt            *time.Time              `json:"paidAt,omitempty"`
	IsDelivered       bool                    `json:"isDelivered"`
	DeliveredAt       *time.Time              `json:"deliveredAt,omitempty"`
	InventoryStatus   string                  `json:"inventoryStatus"`
	PaymentReference  *string                 `json:"paymentReference,omitempty"`
	BookedAt          time.Time               `json:"bookedAt"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

type BookingItemResponse struct {
	EventID   uuid.UUID `json:"event"`
	Quantity  int32     `json:"quantity"`
	UnitPrice float64   `json:"price"`
}

type ShippingAddressResponse struct {
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

type BookingEnvelope struct {
	Status string           `json:"status"`
	Data   *BookingResponse `json:"data"`
}

type BookingListResponse struct {
	Status           string             `json:"status"`
	Results          int                `json:"results"`
	PaginationResult PaginationResponse `json:"paginationResult"`
	Data             []*BookingResponse `json:"data"`
}

type PaginationResponse struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	NumberOfPages int  `json:"numberOfPages"`
	Next          *int `json:"next,omitempty"`
	Prev          *int `json:"prev,omitempty"`
}

type SessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type SessionEnvelope struct {
	Status  string          `json:"status"`
	Session SessionResponse `json:"session"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: float64(0),
			Fn: func(src interface{}) (interface{}, error) {
				d, ok := src.(decimal.Decimal)
				if !ok {
					return nil, fmt.Errorf("expected decimal.Decimal, got %T", src)
				}
				return d.InexactFloat64(), nil
			},
		},
	},
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.CopyWithOption(&res, v, copyOption); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []BookingItemResponse{}
	}
	return &res, nil
}

func FromBookingPage(p *queries.BookingPage) (*BookingListResponse, error) {
	data := make([]*BookingResponse, len(p.Data))
	for i, v := range p.Data {
		r, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		data[i] = r
	}

	var pagination PaginationResponse
	if err := copier.Copy(&pagination, &p.Pagination); err != nil {
		return nil, err
	}

	return &BookingListResponse{
		Status:           StatusSuccess,
		Results:          p.Results,
		PaginationResult: pagination,
		Data:             data,
	}, nil
}

func FromSession(s *commands.Session) SessionEnvelope {
	return SessionEnvelope{
		Status:  StatusSuccess,
		Session: SessionResponse{ID: s.ID, URL: s.URL},
	}
}
