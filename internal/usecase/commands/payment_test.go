//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"
	commandsmock "ticket-checkout/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandleWebhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)

	var conversions *commandsmock.MockConversionCommands
	setup := func(t *testing.T) (*commandsmock.MockWebhookVerifier, *commandsmock.MockCheckoutPublisher, commands.WebhookCommands) {
		ctrl := gomock.NewController(t)
		v := commandsmock.NewMockWebhookVerifier(ctrl)
		p := commandsmock.NewMockCheckoutPublisher(ctrl)
		conversions = commandsmock.NewMockConversionCommands(ctrl)
		return v, p, commands.NewWebhookCommands(v, p, conversions)
	}

	t.Run("完了イベントをキューに渡す", func(t *testing.T) {
		v, p, cmds := setup(t)
		completed := payment.CheckoutCompleted{EventID: "evt_1", SessionID: "cs_1", CartID: uuid.New(), CustomerEmail: "a@example.com"}
		v.EXPECT().VerifyEvent(payload, "sig").
			Return(payment.GatewayEvent{ID: "evt_1", Type: payment.EventTypeCheckoutCompleted, Completed: &completed}, nil)
		p.EXPECT().PublishCheckoutCompleted(gomock.Any(), completed).Return(nil)

		res, err := cmds.HandleWebhook(context.Background(), payload, "sig")
		require.NoError(t, err)
		assert.True(t, res.Forwarded)
		assert.Equal(t, "evt_1", res.EventID)
	})

	t.Run("対象外のイベントは受理のみ", func(t *testing.T) {
		v, _, cmds := setup(t)
		v.EXPECT().VerifyEvent(payload, "sig").
			Return(payment.GatewayEvent{ID: "evt_2", Type: "charge.refunded"}, nil)

		res, err := cmds.HandleWebhook(context.Background(), payload, "sig")
		require.NoError(t, err)
		assert.False(t, res.Forwarded)
		assert.Equal(t, "charge.refunded", res.EventType)
	})

	t.Run("署名不正", func(t *testing.T) {
		v, _, cmds := setup(t)
		v.EXPECT().VerifyEvent(payload, "bad").Return(payment.GatewayEvent{}, errors.New("no valid signature"))

		_, err := cmds.HandleWebhook(context.Background(), payload, "bad")
		assert.True(t, errs.Is(err, commands.ErrSignatureInvalid))
	})

	t.Run("キュー投入失敗", func(t *testing.T) {
		v, p, cmds := setup(t)
		completed := payment.CheckoutCompleted{EventID: "evt_3", SessionID: "cs_3", CartID: uuid.New(), CustomerEmail: "a@example.com"}
		v.EXPECT().VerifyEvent(payload, "sig").
			Return(payment.GatewayEvent{ID: "evt_3", Type: payment.EventTypeCheckoutCompleted, Completed: &completed}, nil)
		p.EXPECT().PublishCheckoutCompleted(gomock.Any(), completed).Return(errors.New("redis down"))

		_, err := cmds.HandleWebhook(context.Background(), payload, "sig")
		assert.True(t, errs.Is(err, commands.ErrPublishFailed))
	})

	t.Run("署名は正しいが復号できない完了イベントは失敗として記録し受理する", func(t *testing.T) {
		v, _, cmds := setup(t)
		partial := payment.CheckoutCompleted{EventID: "evt_4", SessionID: "cs_4"}
		v.EXPECT().VerifyEvent(payload, "sig").
			Return(payment.GatewayEvent{
				ID:        "evt_4",
				Type:      payment.EventTypeCheckoutCompleted,
				Completed: &partial,
				Malformed: payment.ErrInvalidCorrelationID,
			}, nil)
		conversions.EXPECT().
			RecordFailure(gomock.Any(), partial, payment.ErrInvalidCorrelationID.Error()).
			Return(nil)

		res, err := cmds.HandleWebhook(context.Background(), payload, "sig")
		require.NoError(t, err)
		assert.True(t, res.Rejected)
		assert.False(t, res.Forwarded)
		assert.Equal(t, "evt_4", res.EventID)
	})

	t.Run("不正イベントの記録に失敗したら再送させる", func(t *testing.T) {
		v, _, cmds := setup(t)
		v.EXPECT().VerifyEvent(payload, "sig").
			Return(payment.GatewayEvent{
				ID:        "evt_5",
				Type:      payment.EventTypeCheckoutCompleted,
				Completed: &payment.CheckoutCompleted{EventID: "evt_5"},
				Malformed: errors.New("decode checkout session: unexpected end of JSON input"),
			}, nil)
		conversions.EXPECT().
			RecordFailure(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.Mark(errors.New("db down"), commands.ErrDatabaseOperationFailed))

		_, err := cmds.HandleWebhook(context.Background(), payload, "sig")
		require.Error(t, err)
		assert.False(t, errs.Is(err, commands.ErrSignatureInvalid))
	})
}
