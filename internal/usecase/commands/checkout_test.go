//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"
	"ticket-checkout/tests/common/builder"
	"ticket-checkout/tests/common/fakeuow"
	commandsmock "ticket-checkout/tests/mock/commands"
	queriesmock "ticket-checkout/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	uow     *fakeuow.UoW
	gateway *commandsmock.MockPaymentGateway
	queries *queriesmock.MockBookingQueries
	cmds    commands.CheckoutCommands
	b       *builder.BookingBuilder
}

func newCheckoutFixture(t *testing.T, settings commands.CheckoutSettings) *checkoutFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &checkoutFixture{
		uow:     fakeuow.New(),
		gateway: commandsmock.NewMockPaymentGateway(ctrl),
		queries: queriesmock.NewMockBookingQueries(ctrl),
		b:       builder.NewBookingBuilder(),
	}
	f.cmds = commands.NewCheckoutCommands(f.uow, f.gateway, f.queries, settings, clock.NewMockClock(fixedNow))

	f.uow.PutCart(f.b.BuildCart())
	for _, it := range f.b.Items {
		f.uow.SetStock(it.EventID, 10)
	}
	return f
}

func defaultSettings() commands.CheckoutSettings {
	return commands.CheckoutSettings{
		Pricing:    booking.Pricing{TaxPrice: decimal.Zero, ShippingPrice: decimal.Zero},
		CashPolicy: booking.CashPaidOnDelivery,
	}
}

// echoView answers GetByIDSystem from whatever the fake store holds.
func (f *checkoutFixture) echoView() {
	f.queries.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
			b := f.uow.Booking(id)
			if b == nil {
				return nil, queries.ErrBookingNotFound
			}
			return &queries.BookingView{
				ID:                b.ID(),
				UserID:            b.UserID(),
				CartID:            b.CartID(),
				TotalBookingPrice: b.TotalPrice(),
				PaymentMethodType: b.PaymentMethod().String(),
				IsPaid:            b.IsPaid(),
				PaidAt:            b.PaidAt(),
				InventoryStatus:   b.InventoryStatus().String(),
			}, nil
		}).AnyTimes()
}

func TestCreateCashBooking(t *testing.T) {
	addr := builder.NewBookingBuilder().ShippingAddress

	t.Run("在庫を引き当てて予約を作成しカートを消す", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		f.echoView()

		res, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Equal(t, "cash", res.Booking.PaymentMethodType)
		assert.False(t, res.Booking.IsPaid)
		assert.True(t, decimal.RequireFromString("300").Equal(res.Booking.TotalBookingPrice))

		assert.Equal(t, int32(8), f.uow.Stock(f.b.Items[0].EventID))
		assert.False(t, f.uow.HasCart(f.b.CartID))

		jobs := f.uow.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, commands.NotificationBookingCreated, jobs[0].Kind)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(jobs[0].Payload, &payload))
		assert.Equal(t, res.Booking.ID.String(), payload["booking_id"])
		assert.Equal(t, "300.00", payload["total"])
	})

	t.Run("税と送料を加算する", func(t *testing.T) {
		settings := defaultSettings()
		settings.Pricing = booking.Pricing{
			TaxPrice:      decimal.RequireFromString("14"),
			ShippingPrice: decimal.RequireFromString("25.50"),
		}
		f := newCheckoutFixture(t, settings)
		f.echoView()

		res, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("339.50").Equal(res.Booking.TotalBookingPrice))
	})

	t.Run("割引後価格を優先する", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		snap := f.b.BuildCart()
		discounted := decimal.RequireFromString("250")
		snap.TotalPriceAfterDiscount = &discounted
		f.uow.PutCart(snap)
		f.echoView()

		res, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)
		assert.True(t, discounted.Equal(res.Booking.TotalBookingPrice))
	})

	t.Run("on_create ポリシーでは作成時に支払済み", func(t *testing.T) {
		settings := defaultSettings()
		settings.CashPolicy = booking.CashPaidOnCreate
		f := newCheckoutFixture(t, settings)
		f.echoView()

		res, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)
		assert.True(t, res.Booking.IsPaid)
		require.NotNil(t, res.Booking.PaidAt)
		assert.Equal(t, fixedNow, *res.Booking.PaidAt)
	})

	t.Run("同じカートの再送は既存予約を返す", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		f.echoView()

		first, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)

		second, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking.ID, second.Booking.ID)

		assert.Equal(t, 1, f.uow.BookingCount())
		assert.Equal(t, int32(8), f.uow.Stock(f.b.Items[0].EventID))
		assert.Len(t, f.uow.Jobs(), 1)
	})

	t.Run("他人の予約済みカートは見つからない扱い", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		f.echoView()

		_, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.NoError(t, err)

		_, err = f.cmds.CreateCashBooking(context.Background(), uuid.New(), f.b.CartID, addr)
		assert.True(t, errs.Is(err, commands.ErrCartNotFound))
	})

	t.Run("存在しないカート", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())

		_, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, uuid.New(), addr)
		assert.True(t, errs.Is(err, commands.ErrCartNotFound))
	})

	t.Run("他人のカート", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())

		_, err := f.cmds.CreateCashBooking(context.Background(), uuid.New(), f.b.CartID, addr)
		assert.True(t, errs.Is(err, commands.ErrCartNotOwned))
		assert.True(t, f.uow.HasCart(f.b.CartID))
	})

	t.Run("空のカート", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		snap := f.b.BuildCart()
		snap.Items = nil
		f.uow.PutCart(snap)

		_, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		assert.True(t, errs.Is(err, commands.ErrCartEmpty))
	})

	t.Run("在庫不足は全体をロールバックする", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		second := booking.LineItem{EventID: uuid.New(), Quantity: 5, UnitPrice: decimal.RequireFromString("10")}
		f.b.WithItems(f.b.Items[0], second)
		f.uow.PutCart(f.b.BuildCart())
		f.uow.SetStock(second.EventID, 4)

		_, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrInsufficientInventory))

		var se *inventory.ShortfallError
		require.True(t, errors.As(err, &se))
		require.Len(t, se.Lines, 1)
		assert.Equal(t, second.EventID, se.Lines[0].EventID)

		assert.Equal(t, 0, f.uow.BookingCount())
		assert.True(t, f.uow.HasCart(f.b.CartID))
		assert.Equal(t, int32(10), f.uow.Stock(f.b.Items[0].EventID))
		assert.Equal(t, int32(4), f.uow.Stock(second.EventID))
		assert.Empty(t, f.uow.Jobs())
	})

	t.Run("存在しないイベント", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		f.b.WithItems(booking.LineItem{EventID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("10")})
		f.uow.PutCart(f.b.BuildCart())

		_, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		assert.True(t, errs.Is(err, commands.ErrEventNotFound))
		assert.Equal(t, 0, f.uow.BookingCount())
	})

	t.Run("通知の書き込み失敗もロールバックする", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())
		f.uow.FailNotifications = true

		_, err := f.cmds.CreateCashBooking(context.Background(), f.b.UserID, f.b.CartID, addr)
		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
		assert.Equal(t, 0, f.uow.BookingCount())
		assert.Equal(t, int32(10), f.uow.Stock(f.b.Items[0].EventID))
		assert.True(t, f.uow.HasCart(f.b.CartID))
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	addr := builder.NewBookingBuilder().ShippingAddress

	setup := func(t *testing.T, settings commands.CheckoutSettings) *checkoutFixture {
		f := newCheckoutFixture(t, settings)
		buyer, err := builder.NewUserBuilder().WithID(f.b.UserID).WithEmail("Buyer@Example.com").WithName("Mona").BuildDomain()
		require.NoError(t, err)
		f.uow.PutUser(buyer)
		return f
	}

	t.Run("ゲートウェイに金額と戻り先を渡す", func(t *testing.T) {
		settings := defaultSettings()
		settings.Pricing = booking.Pricing{TaxPrice: decimal.RequireFromString("0.105"), ShippingPrice: decimal.Zero}
		f := setup(t, settings)

		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
				assert.Equal(t, f.b.CartID, req.CartID)
				assert.Equal(t, "buyer@example.com", req.CustomerEmail)
				assert.Equal(t, "Mona", req.CustomerName)
				// 300.105 rounds half up to 30011 minor units
				assert.Equal(t, int64(30011), req.AmountMinor)
				assert.Equal(t, addr, req.ShippingAddress)
				assert.Equal(t, "https://shop.example.com/bookings", req.SuccessURL)
				assert.Equal(t, "https://shop.example.com/cart", req.CancelURL)
				return &commands.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
			})

		s, err := f.cmds.CreateCheckoutSession(context.Background(), f.b.UserID, f.b.CartID, addr, "https://shop.example.com/")
		require.NoError(t, err)
		assert.Equal(t, "cs_1", s.ID)

		// session creation never books or allocates
		assert.Equal(t, 0, f.uow.BookingCount())
		assert.True(t, f.uow.HasCart(f.b.CartID))
		assert.Equal(t, int32(10), f.uow.Stock(f.b.Items[0].EventID))
	})

	t.Run("公開URLの設定がリクエスト元より優先される", func(t *testing.T) {
		settings := defaultSettings()
		settings.PublicBaseURL = "https://tickets.example.com"
		f := setup(t, settings)

		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
				assert.Equal(t, "https://tickets.example.com/bookings", req.SuccessURL)
				return &commands.Session{ID: "cs_2"}, nil
			})

		_, err := f.cmds.CreateCheckoutSession(context.Background(), f.b.UserID, f.b.CartID, addr, "http://internal:8080")
		require.NoError(t, err)
	})

	t.Run("ゲートウェイ障害", func(t *testing.T) {
		f := setup(t, defaultSettings())
		f.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.cmds.CreateCheckoutSession(context.Background(), f.b.UserID, f.b.CartID, addr, "http://localhost")
		assert.True(t, errs.Is(err, commands.ErrGatewayUnavailable))
	})

	t.Run("購入者が存在しない", func(t *testing.T) {
		f := newCheckoutFixture(t, defaultSettings())

		_, err := f.cmds.CreateCheckoutSession(context.Background(), f.b.UserID, f.b.CartID, addr, "http://localhost")
		assert.True(t, errs.Is(err, commands.ErrBuyerNotFound))
	})

	t.Run("他人のカート", func(t *testing.T) {
		f := setup(t, defaultSettings())

		_, err := f.cmds.CreateCheckoutSession(context.Background(), uuid.New(), f.b.CartID, addr, "http://localhost")
		assert.True(t, errs.Is(err, commands.ErrCartNotOwned))
	})
}
