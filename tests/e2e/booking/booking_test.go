//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/handler/dto/request"
	"ticket-checkout/internal/handler/dto/response"
	"ticket-checkout/tests/common/dbtest"
	"ticket-checkout/tests/common/httptest"
	"ticket-checkout/tests/common/stripetest"
	"ticket-checkout/tests/e2e"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL        = "/api/v1/bookings"
	cashBookingURL     = "/api/v1/bookings/%s"
	checkoutSessionURL = "/api/v1/bookings/checkout-session/%s"
	bookingURL         = "/api/v1/bookings/%s"
	payURL             = "/api/v1/bookings/%s/pay"
	deliverURL         = "/api/v1/bookings/%s/deliver"
	webhookURL         = "/webhook-checkout"

	conversionTimeout = 15 * time.Second
	pollInterval      = 100 * time.Millisecond
)

var ticketPrice = decimal.RequireFromString("100.00")

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

func checkoutBody() request.CheckoutRequest {
	return request.CheckoutRequest{
		ShippingAddress: request.ShippingAddressRequest{
			Details:    "12 Tahrir St",
			Phone:      "01000000000",
			City:       "Cairo",
			PostalCode: "11511",
		},
	}
}

func (s *BookingSuite) cartFor(t *testing.T, userID, eventID uuid.UUID, qty int32) uuid.UUID {
	t.Helper()
	return dbtest.CreateTestCart(t, s.DB, userID, nil, dbtest.CartLine{EventID: eventID, Quantity: qty, UnitPrice: ticketPrice})
}

// =============================================================================
// 現金予約
// =============================================================================

func (s *BookingSuite) TestCashBooking() {
	s.Run("正常系: 予約作成で在庫が減りカートが消える", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, buyerID, eventID, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, cartID), checkoutBody(), token)
		var res response.BookingEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)

		require.NotNil(t, res.Data)
		assert.Equal(t, "success", res.Status)
		assert.Equal(t, buyerID, res.Data.UserID)
		assert.Equal(t, booking.PaymentMethodCash.String(), res.Data.PaymentMethodType)
		assert.InDelta(t, 200.0, res.Data.TotalBookingPrice, 0.001)
		assert.False(t, res.Data.IsPaid)
		assert.Equal(t, booking.InventoryAllocated.String(), res.Data.InventoryStatus)

		quantity, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(3), quantity)
		assert.Equal(t, int32(2), sold)
		assert.False(t, dbtest.CartExists(t, s.DB, cartID))
		assert.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "booking_created"))
	})

	s.Run("再送: 同じカートは既存の予約を 200 で返す", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, buyerID, eventID, 1)
		url := fmt.Sprintf(cashBookingURL, cartID)

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, url, checkoutBody(), token)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		again := httptest.PerformRequest(t, s.Router, http.MethodPost, url, checkoutBody(), token)
		require.Equal(t, http.StatusOK, again.Code, again.Body.String())

		assert.Equal(t, 1, dbtest.CountBookingsForCart(t, s.DB, cartID))
		_, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(1), sold)
	})

	s.Run("在庫不足: 409 でカートも在庫も変わらない", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Sold Out Show", ticketPrice, 1)
		cartID := s.cartFor(t, buyerID, eventID, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, cartID), checkoutBody(), token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient inventory")

		quantity, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(1), quantity)
		assert.Equal(t, int32(0), sold)
		assert.True(t, dbtest.CartExists(t, s.DB, cartID))
		assert.Equal(t, 0, dbtest.CountBookingsForCart(t, s.DB, cartID))
	})

	s.Run("他人のカートは 404", func() {
		t := s.T()
		ownerID, _ := s.Auth.CreateUserWithToken(t, s.DB, "owner@example.com", user.RoleUser)
		_, intruder := s.Auth.CreateUserWithToken(t, s.DB, "intruder@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, ownerID, eventID, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, cartID), checkoutBody(), intruder)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Cart not found")
		assert.True(t, dbtest.CartExists(t, s.DB, cartID))
	})

	s.Run("期限切れトークンは 401", func() {
		t := s.T()
		buyerID, _ := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		expired := s.Auth.CreateExpiredToken(t, buyerID, user.RoleUser)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, uuid.New()), checkoutBody(), expired)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// 在庫台帳の同時実行
// =============================================================================

func (s *BookingSuite) TestConcurrentCashBookings() {
	s.Run("同時予約でも在庫を超えて売らない", func() {
		t := s.T()
		const (
			stock   = 3
			buyers  = 8
			perCart = 1
		)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Small Venue", ticketPrice, stock)

		type attempt struct {
			url   string
			token string
		}
		attempts := make([]attempt, buyers)
		for i := range attempts {
			id, token := s.Auth.CreateUserWithToken(t, s.DB, fmt.Sprintf("buyer%d@example.com", i), user.RoleUser)
			attempts[i] = attempt{url: fmt.Sprintf(cashBookingURL, s.cartFor(t, id, eventID, perCart)), token: token}
		}

		codes := make([]int, buyers)
		var wg sync.WaitGroup
		for i, a := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i] = httptest.PerformRequest(t, s.Router, http.MethodPost, a.url, checkoutBody(), a.token).Code
			}()
		}
		wg.Wait()

		var created, conflicts int
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		assert.Equal(t, stock, created)
		assert.Equal(t, buyers-stock, conflicts)

		quantity, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(0), quantity)
		assert.Equal(t, int32(stock), sold)
	})
}

// =============================================================================
// カード決済: セッション作成 → Webhook → キュー → 予約変換
// =============================================================================

func (s *BookingSuite) TestCardCheckout() {
	s.Run("セッション作成では予約も在庫も変わらない", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "Buyer@Example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, buyerID, eventID, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkoutSessionURL, cartID), checkoutBody(), token)
		var res response.SessionEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.NotEmpty(t, res.Session.ID)
		assert.NotEmpty(t, res.Session.URL)

		reqs := s.Gateway.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, cartID, reqs[0].CartID)
		assert.Equal(t, int64(20000), reqs[0].AmountMinor)
		assert.Equal(t, "buyer@example.com", reqs[0].CustomerEmail)

		_, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(0), sold)
		assert.True(t, dbtest.CartExists(t, s.DB, cartID))
		assert.Equal(t, 0, dbtest.CountBookingsForCart(t, s.DB, cartID))
	})

	s.Run("支払完了イベントで支払済みの予約ができる", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, buyerID, eventID, 2)
		session := s.completedSession(cartID, "Buyer@Example.com")

		s.deliverWebhook(t, stripetest.CompletedEvent(session))
		s.waitForInbox(t, session.EventID, "processed")

		_, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(2), sold)
		assert.False(t, dbtest.CartExists(t, s.DB, cartID))

		list := s.listBookings(t, token, "")
		require.Len(t, list.Data, 1)
		b := list.Data[0]
		assert.Equal(t, booking.PaymentMethodCard.String(), b.PaymentMethodType)
		assert.True(t, b.IsPaid)
		require.NotNil(t, b.PaymentReference)
		assert.Equal(t, session.SessionID, *b.PaymentReference)
		assert.InDelta(t, 200.0, b.TotalBookingPrice, 0.001)
		assert.Equal(t, "Cairo", b.ShippingAddress.City)
	})

	s.Run("同じイベントの再配信で予約は増えない", func() {
		t := s.T()
		buyerID, _ := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, buyerID, eventID, 1)
		session := s.completedSession(cartID, "buyer@example.com")
		payload := stripetest.CompletedEvent(session)

		s.deliverWebhook(t, payload)
		s.waitForInbox(t, session.EventID, "processed")

		// Stripe が同じイベントを再送、さらに別 ID で同じセッションを送ってくる
		s.deliverWebhook(t, payload)
		again := session
		again.EventID = "evt_" + uuid.NewString()
		s.deliverWebhook(t, stripetest.CompletedEvent(again))
		s.waitForInbox(t, again.EventID, "duplicate")

		assert.Equal(t, 1, dbtest.CountBookingsForCart(t, s.DB, cartID))
		_, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(1), sold)
	})

	s.Run("在庫不足でも支払済みの予約は残り配送は 409", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		_, adminToken := s.Auth.CreateUserWithToken(t, s.DB, "admin@example.com", user.RoleAdmin)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Sold Out Show", ticketPrice, 1)
		cartID := s.cartFor(t, buyerID, eventID, 2)
		session := s.completedSession(cartID, "buyer@example.com")

		s.deliverWebhook(t, stripetest.CompletedEvent(session))
		s.waitForInbox(t, session.EventID, "processed")

		list := s.listBookings(t, token, "")
		require.Len(t, list.Data, 1)
		b := list.Data[0]
		assert.True(t, b.IsPaid)
		assert.Equal(t, booking.InventoryShort.String(), b.InventoryStatus)

		quantity, sold := dbtest.EventStock(t, s.DB, eventID)
		assert.Equal(t, int32(1), quantity)
		assert.Equal(t, int32(0), sold)
		assert.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "inventory_shortfall"))

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(deliverURL, b.ID), nil, adminToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient inventory")
	})

	s.Run("未登録の購入者は failed として記録される", func() {
		t := s.T()
		ownerID, _ := s.Auth.CreateUserWithToken(t, s.DB, "owner@example.com", user.RoleUser)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, ownerID, eventID, 1)
		session := s.completedSession(cartID, "stranger@example.com")

		s.deliverWebhook(t, stripetest.CompletedEvent(session))
		s.waitForInbox(t, session.EventID, "failed")

		assert.True(t, dbtest.CartExists(t, s.DB, cartID))
		assert.Equal(t, 0, dbtest.CountBookingsForCart(t, s.DB, cartID))
	})

	s.Run("受け付けた Webhook はリクエストIDを返す", func() {
		t := s.T()
		payload := stripetest.Event("evt_"+uuid.NewString(), "payment_intent.created")

		w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, payload, map[string]string{
			"Stripe-Signature": stripetest.Sign(payload, s.Config.Payment.WebhookSecret, time.Now()),
			"X-Request-ID":     "edge-req-1",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.AssertHeaders(t, w, map[string]string{"X-Request-ID": "edge-req-1"})
		assert.JSONEq(t, `{"received":true}`, w.Body.String())
	})

	s.Run("署名は正しいが参照IDが壊れた完了イベントは 200 で failed として残る", func() {
		t := s.T()
		session := s.completedSession(uuid.Nil, "buyer@example.com")

		s.deliverWebhook(t, stripetest.CompletedEvent(session))

		assert.Equal(t, "failed", dbtest.PaymentEventStatus(t, s.DB, session.EventID))
	})

	s.Run("署名が不正な Webhook は 400", func() {
		t := s.T()
		payload := stripetest.CompletedEvent(s.completedSession(uuid.New(), "buyer@example.com"))

		w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, payload, map[string]string{
			"Stripe-Signature": stripetest.Sign(payload, "whsec_wrong", time.Now()),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Webhook Error")
	})
}

// =============================================================================
// 状態更新と参照
// =============================================================================

func (s *BookingSuite) TestBookingStatusAndQueries() {
	s.Run("スタッフが支払と配送を記録し購入者だけが参照できる", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		_, otherToken := s.Auth.CreateUserWithToken(t, s.DB, "other@example.com", user.RoleUser)
		_, managerToken := s.Auth.CreateUserWithToken(t, s.DB, "manager@example.com", user.RoleManager)
		eventID := dbtest.CreateTestEvent(t, s.DB, "Jazz Night", ticketPrice, 5)
		cartID := s.cartFor(t, buyerID, eventID, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, cartID), checkoutBody(), token)
		var created response.BookingEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		id := created.Data.ID

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(payURL, id), nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(payURL, id), nil, managerToken)
		var paid response.BookingEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)
		assert.True(t, paid.Data.IsPaid)
		require.NotNil(t, paid.Data.PaidAt)

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(deliverURL, id), nil, managerToken)
		var delivered response.BookingEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &delivered)
		assert.True(t, delivered.Data.IsDelivered)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, id), nil, token)
		var got response.BookingEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, id, got.Data.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, id), nil, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")

		assert.Empty(t, s.listBookings(t, otherToken, "").Data)
		assert.Len(t, s.listBookings(t, managerToken, "?isDelivered=true").Data, 1)
		assert.Empty(t, s.listBookings(t, managerToken, "?paymentMethodType=card").Data)
	})
}

// =============================================================================
// helpers
// =============================================================================

func (s *BookingSuite) completedSession(cartID uuid.UUID, email string) stripetest.CompletedSession {
	return stripetest.CompletedSession{
		EventID:       "evt_" + uuid.NewString(),
		SessionID:     "cs_test_" + uuid.NewString(),
		CartID:        cartID,
		CustomerEmail: email,
		AmountTotal:   20000,
		Currency:      s.Config.Payment.Currency,
		Address: booking.ShippingAddress{
			Details: "12 Tahrir St",
			Phone:   "01000000000",
			City:    "Cairo",
		},
	}
}

func (s *BookingSuite) deliverWebhook(t *testing.T, payload []byte) {
	t.Helper()
	w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, webhookURL, payload, map[string]string{
		"Stripe-Signature": stripetest.Sign(payload, s.Config.Payment.WebhookSecret, time.Now()),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// waitForInbox polls until the consumer settles the event with the given status.
func (s *BookingSuite) waitForInbox(t *testing.T, eventID, status string) {
	t.Helper()
	ok := assert.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		var got string
		err := s.DB.QueryRow(ctx,
			"SELECT COALESCE((SELECT status FROM payment_events WHERE event_id = $1), '')", eventID).Scan(&got)
		return err == nil && got == status
	}, conversionTimeout, pollInterval)
	require.True(t, ok, "event %s was not settled as %q; last seen %q",
		eventID, status, dbtest.PaymentEventStatus(t, s.DB, eventID))
}

func (s *BookingSuite) listBookings(t *testing.T, token, query string) response.BookingListResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+query, nil, token)
	var res response.BookingListResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return res
}
