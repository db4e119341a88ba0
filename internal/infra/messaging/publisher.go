package messaging

import (
	"context"
	"encoding/json"

	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

type CheckoutPublisher struct {
	publisher message.Publisher
}

var _ commands.CheckoutPublisher = (*CheckoutPublisher)(nil)

func NewCheckoutPublisher(publisher message.Publisher) *CheckoutPublisher {
	return &CheckoutPublisher{publisher: publisher}
}

func (p *CheckoutPublisher) PublishCheckoutCompleted(ctx context.Context, evt payment.CheckoutCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return errs.Wrap(err, "failed to encode checkout completed event")
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)
	middleware.SetCorrelationID(evt.EventID, msg)

	if err := p.publisher.Publish(TopicCheckoutCompleted, msg); err != nil {
		return errs.Wrap(err, "failed to publish checkout completed event")
	}
	return nil
}

// DecodeCheckoutCompleted reads a message produced by PublishCheckoutCompleted.
func DecodeCheckoutCompleted(msg *message.Message) (payment.CheckoutCompleted, error) {
	var evt payment.CheckoutCompleted
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return payment.CheckoutCompleted{}, errs.Wrap(err, "failed to decode checkout completed event")
	}
	return evt, nil
}
