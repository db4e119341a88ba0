package commands

import (
	"context"
	"log/slog"

	"ticket-checkout/internal/domain/payment"
	"ticket-checkout/internal/pkg/errs"
)

type WebhookResult struct {
	EventID   string
	EventType string
	// Forwarded reports whether the event was queued for conversion.
	Forwarded bool
	// Rejected reports a signed event that was recorded as failed instead.
	Rejected bool
}

type WebhookCommands interface {
	// HandleWebhook verifies a raw gateway delivery and queues completed
	// checkouts. It never converts in-line; that runs on the queue consumer.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
}

type webhookCommandsImpl struct {
	verifier    WebhookVerifier
	publisher   CheckoutPublisher
	conversions ConversionCommands
}

func NewWebhookCommands(verifier WebhookVerifier, publisher CheckoutPublisher, conversions ConversionCommands) WebhookCommands {
	return &webhookCommandsImpl{
		verifier:    verifier,
		publisher:   publisher,
		conversions: conversions,
	}
}

func (uc *webhookCommandsImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	evt, err := uc.verifier.VerifyEvent(payload, signature)
	if err != nil {
		slog.Warn("webhook verification failed", "error", err.Error())
		return nil, errs.Mark(err, ErrSignatureInvalid)
	}

	result := &WebhookResult{EventID: evt.ID, EventType: evt.Type}
	if evt.Type != payment.EventTypeCheckoutCompleted {
		slog.Debug("ignoring webhook event", "event_id", evt.ID, "type", evt.Type)
		return result, nil
	}

	// Redelivery cannot repair a signed event, so it is acknowledged and kept
	// in the inbox as failed.
	if evt.Malformed != nil || evt.Completed == nil {
		reason := "checkout session missing from event"
		if evt.Malformed != nil {
			reason = evt.Malformed.Error()
		}
		var partial payment.CheckoutCompleted
		if evt.Completed != nil {
			partial = *evt.Completed
		}
		partial.EventID = evt.ID

		slog.Error("unusable checkout completed event",
			"event_id", evt.ID,
			"session_id", partial.SessionID,
			"reason", reason)
		if err := uc.conversions.RecordFailure(ctx, partial, reason); err != nil {
			return nil, errs.Wrap(err, "failed to record unusable checkout event")
		}
		result.Rejected = true
		return result, nil
	}

	if err := uc.publisher.PublishCheckoutCompleted(ctx, *evt.Completed); err != nil {
		slog.Error("failed to queue checkout completed event",
			"event_id", evt.ID,
			"cart_id", evt.Completed.CartID.String(),
			"error", err.Error())
		return nil, errs.Mark(err, ErrPublishFailed)
	}

	result.Forwarded = true
	return result, nil
}
