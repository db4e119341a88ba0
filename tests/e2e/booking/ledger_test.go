//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"

	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/handler/dto/response"
	"ticket-checkout/internal/infra/repository"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/tests/common/dbtest"
	"ticket-checkout/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 在庫台帳（複数明細）
// =============================================================================

func (s *BookingSuite) applyPurchase(adjs ...inventory.Adjustment) inventory.Outcome {
	t := s.T()
	ctx := context.Background()

	tx, err := s.DB.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	outcome, err := repository.NewInventoryLedger(sqlc.New(), tx).ApplyPurchase(ctx, adjs)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return outcome
}

func statusesOf(o inventory.Outcome) map[uuid.UUID]inventory.LineStatus {
	out := make(map[uuid.UUID]inventory.LineStatus, len(o.Lines))
	for _, l := range o.Lines {
		out[l.EventID] = l.Status
	}
	return out
}

func (s *BookingSuite) TestInventoryLedger() {
	s.Run("全明細に在庫があれば全イベントが動く", func() {
		t := s.T()
		first := dbtest.CreateTestEvent(t, s.DB, "Opening Night", ticketPrice, 5)
		second := dbtest.CreateTestEvent(t, s.DB, "Closing Night", ticketPrice, 3)

		outcome := s.applyPurchase(
			inventory.Adjustment{EventID: first, Quantity: 2},
			inventory.Adjustment{EventID: second, Quantity: 3},
			inventory.Adjustment{EventID: first, Quantity: 1},
		)

		assert.True(t, outcome.Applied())
		assert.Equal(t, map[uuid.UUID]inventory.LineStatus{
			first:  inventory.LineApplied,
			second: inventory.LineApplied,
		}, statusesOf(outcome))

		quantity, sold := dbtest.EventStock(t, s.DB, first)
		assert.Equal(t, int32(2), quantity)
		assert.Equal(t, int32(3), sold)
		quantity, sold = dbtest.EventStock(t, s.DB, second)
		assert.Equal(t, int32(0), quantity)
		assert.Equal(t, int32(3), sold)
	})

	s.Run("一部が在庫不足なら適用済みの明細も巻き戻る", func() {
		t := s.T()
		inStock := dbtest.CreateTestEvent(t, s.DB, "Opening Night", ticketPrice, 5)
		short := dbtest.CreateTestEvent(t, s.DB, "Tiny Venue", ticketPrice, 1)
		unknown := uuid.New()

		outcome := s.applyPurchase(
			inventory.Adjustment{EventID: inStock, Quantity: 2},
			inventory.Adjustment{EventID: short, Quantity: 3},
			inventory.Adjustment{EventID: unknown, Quantity: 1},
		)

		assert.False(t, outcome.Applied())
		assert.Equal(t, map[uuid.UUID]inventory.LineStatus{
			inStock: inventory.LineApplied,
			short:   inventory.LineInsufficient,
			unknown: inventory.LineMissing,
		}, statusesOf(outcome))

		quantity, sold := dbtest.EventStock(t, s.DB, inStock)
		assert.Equal(t, int32(5), quantity)
		assert.Equal(t, int32(0), sold)
		quantity, sold = dbtest.EventStock(t, s.DB, short)
		assert.Equal(t, int32(1), quantity)
		assert.Equal(t, int32(0), sold)
	})

	s.Run("複数明細の現金予約は各イベントを明細数だけ動かす", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		first := dbtest.CreateTestEvent(t, s.DB, "Opening Night", ticketPrice, 10)
		second := dbtest.CreateTestEvent(t, s.DB, "Closing Night", ticketPrice, 4)
		cartID := dbtest.CreateTestCart(t, s.DB, buyerID, nil,
			dbtest.CartLine{EventID: first, Quantity: 2, UnitPrice: ticketPrice},
			dbtest.CartLine{EventID: second, Quantity: 4, UnitPrice: ticketPrice},
		)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, cartID), checkoutBody(), token)
		var res response.BookingEnvelope
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.NotNil(t, res.Data)
		assert.Len(t, res.Data.Items, 2)
		assert.InDelta(t, 600.0, res.Data.TotalBookingPrice, 0.001)

		quantity, sold := dbtest.EventStock(t, s.DB, first)
		assert.Equal(t, int32(8), quantity)
		assert.Equal(t, int32(2), sold)
		quantity, sold = dbtest.EventStock(t, s.DB, second)
		assert.Equal(t, int32(0), quantity)
		assert.Equal(t, int32(4), sold)
		assert.False(t, dbtest.CartExists(t, s.DB, cartID))
	})

	s.Run("複数明細の一部が在庫不足なら 409 でどのイベントも動かない", func() {
		t := s.T()
		buyerID, token := s.Auth.CreateUserWithToken(t, s.DB, "buyer@example.com", user.RoleUser)
		inStock := dbtest.CreateTestEvent(t, s.DB, "Opening Night", ticketPrice, 10)
		short := dbtest.CreateTestEvent(t, s.DB, "Tiny Venue", ticketPrice, 1)
		cartID := dbtest.CreateTestCart(t, s.DB, buyerID, nil,
			dbtest.CartLine{EventID: inStock, Quantity: 2, UnitPrice: ticketPrice},
			dbtest.CartLine{EventID: short, Quantity: 2, UnitPrice: ticketPrice},
		)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cashBookingURL, cartID), checkoutBody(), token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient inventory")

		quantity, sold := dbtest.EventStock(t, s.DB, inStock)
		assert.Equal(t, int32(10), quantity)
		assert.Equal(t, int32(0), sold)
		quantity, sold = dbtest.EventStock(t, s.DB, short)
		assert.Equal(t, int32(1), quantity)
		assert.Equal(t, int32(0), sold)
		assert.True(t, dbtest.CartExists(t, s.DB, cartID))
		assert.Equal(t, 0, dbtest.CountBookingsForCart(t, s.DB, cartID))
	})
}
