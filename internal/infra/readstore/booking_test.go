//go:build unit

package readstore

import (
	"context"
	"testing"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/infra/repository/converter"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/usecase/queries"
	"ticket-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingViewQueries struct {
	mock.Mock
}

func (m *MockBookingViewQueries) GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Booking, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Booking), args.Error(1)
}

func (m *MockBookingViewQueries) ListBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsParams) ([]sqlc.Booking, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Booking), args.Error(1)
}

func (m *MockBookingViewQueries) CountBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.CountBookingsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingViewQueries) ListBookingItems(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.BookingItem, error) {
	args := m.Called(ctx, db, bookingID)
	return args.Get(0).([]sqlc.BookingItem), args.Error(1)
}

func (m *MockBookingViewQueries) ListBookingItemsByBookingIDs(ctx context.Context, db sqlc.DBTX, bookingIds []uuid.UUID) ([]sqlc.BookingItem, error) {
	args := m.Called(ctx, db, bookingIds)
	return args.Get(0).([]sqlc.BookingItem), args.Error(1)
}

func rowsOf(t *testing.T, b *booking.Booking) (sqlc.Booking, []sqlc.BookingItem) {
	t.Helper()
	params, err := converter.BookingToCreateParams(b)
	require.NoError(t, err)
	itemParams := converter.BookingItemsToParams(b)
	items := make([]sqlc.BookingItem, len(itemParams))
	for i, p := range itemParams {
		items[i] = sqlc.BookingItem(p)
	}
	return sqlc.Booking(params), items
}

func TestFindByID(t *testing.T) {
	b := builder.NewBookingBuilder().AsCard().BuildDomain()
	row, items := rowsOf(t, b)

	tests := []struct {
		name      string
		row       sqlc.Booking
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", row: row},
		{name: "booking not found", mockError: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
		{
			name: "corrupted total",
			row: func() sqlc.Booking {
				r := row
				r.TotalBookingPrice = pgtype.Numeric{}
				return r
			}(),
			wantKind: infra.KindDataCorrupted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockBookingViewQueries)
			mockQueries.On("GetBookingByID", mock.Anything, mock.Anything, b.ID()).Return(tt.row, tt.mockError)
			if tt.mockError == nil {
				mockQueries.On("ListBookingItems", mock.Anything, mock.Anything, b.ID()).Return(items, nil)
			}

			view, err := NewBookingReadStore(mockQueries, nil).FindByID(context.Background(), b.ID())

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, b.ID(), view.ID)
			assert.Equal(t, "card", view.PaymentMethodType)
			assert.True(t, view.IsPaid)
			require.NotNil(t, view.PaidAt)
			assert.True(t, b.TotalPrice().Equal(view.TotalBookingPrice))
			assert.Equal(t, b.ShippingAddress().City, view.ShippingAddress.City)
			assert.Equal(t, b.ShippingAddress().PostalCode, view.ShippingAddress.PostalCode)
			require.Len(t, view.Items, 1)
			assert.True(t, decimal.RequireFromString("150").Equal(view.Items[0].UnitPrice))
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestList(t *testing.T) {
	first := builder.NewBookingBuilder().BuildDomain()
	second := builder.NewBookingBuilder().AsCard().BuildDomain()
	firstRow, firstItems := rowsOf(t, first)
	secondRow, secondItems := rowsOf(t, second)

	t.Run("明細を予約ごとにまとめる", func(t *testing.T) {
		owner := first.UserID()
		paid := true
		filter := queries.BookingFilter{UserID: &owner, IsPaid: &paid}

		mockQueries := new(MockBookingViewQueries)
		mockQueries.On("ListBookings", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.ListBookingsParams) bool {
			return p.UserID.Valid && p.UserID.Bytes == owner &&
				p.IsPaid.Valid && p.IsPaid.Bool &&
				!p.IsDelivered.Valid && !p.PaymentMethodType.Valid &&
				p.PageLimit == 20 && p.PageOffset == 40
		})).Return([]sqlc.Booking{firstRow, secondRow}, nil)
		mockQueries.On("ListBookingItemsByBookingIDs", mock.Anything, mock.Anything, []uuid.UUID{first.ID(), second.ID()}).
			Return(append(append([]sqlc.BookingItem{}, secondItems...), firstItems...), nil)

		views, err := NewBookingReadStore(mockQueries, nil).List(context.Background(), filter, 20, 40)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, first.ID(), views[0].ID)
		assert.Equal(t, second.ID(), views[1].ID)
		assert.Len(t, views[0].Items, len(first.Items()))
		assert.Len(t, views[1].Items, len(second.Items()))
		mockQueries.AssertExpectations(t)
	})

	t.Run("該当なしは空スライスで明細は引かない", func(t *testing.T) {
		mockQueries := new(MockBookingViewQueries)
		mockQueries.On("ListBookings", mock.Anything, mock.Anything, mock.Anything).Return([]sqlc.Booking{}, nil)

		views, err := NewBookingReadStore(mockQueries, nil).List(context.Background(), queries.BookingFilter{}, 50, 0)
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
		mockQueries.AssertNotCalled(t, "ListBookingItemsByBookingIDs", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCount(t *testing.T) {
	method := "cash"
	mockQueries := new(MockBookingViewQueries)
	mockQueries.On("CountBookings", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CountBookingsParams) bool {
		return p.PaymentMethodType.Valid && p.PaymentMethodType.String == "cash" && !p.UserID.Valid
	})).Return(int64(7), nil)

	n, err := NewBookingReadStore(mockQueries, nil).Count(context.Background(), queries.BookingFilter{PaymentMethodType: &method})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
