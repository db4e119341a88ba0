package message

import (
	"log/slog"

	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

const (
	checkoutHandlerName = "convert_checkout"
	poisonHandlerName   = "record_checkout_failure"
)

// PaymentHandler consumes completed checkouts queued by the webhook.
type PaymentHandler struct {
	cmds    commands.ConversionCommands
	metrics *metrics.Metrics
}

func NewPaymentHandler(cmds commands.ConversionCommands, m *metrics.Metrics) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, metrics: m}
}

// Register adds the conversion consumer and its poison consumer to router.
func (h *PaymentHandler) Register(
	router *message.Router,
	sub message.Subscriber,
	pub message.Publisher,
	cfg config.MessagingConfig,
	logger watermill.LoggerAdapter,
) error {
	main := router.AddNoPublisherHandler(checkoutHandlerName, messaging.TopicCheckoutCompleted, sub, h.HandleCheckoutCompleted)
	if err := messaging.ReliableHandler(main, cfg, pub, messaging.TopicCheckoutCompletedPoisoned, logger); err != nil {
		return err
	}

	poisoned := router.AddNoPublisherHandler(poisonHandlerName, messaging.TopicCheckoutCompletedPoisoned, sub, h.HandlePoisoned)
	poisoned.AddMiddleware(messaging.RetryMiddleware(cfg, logger), middleware.Recoverer)
	return nil
}

func (h *PaymentHandler) HandleCheckoutCompleted(msg *message.Message) error {
	evt, err := messaging.DecodeCheckoutCompleted(msg)
	if err != nil {
		// unreadable payloads never succeed; ack so they do not block the stream
		slog.Error("dropping undecodable checkout message", "message_uuid", msg.UUID, "error", err.Error())
		h.metrics.Conversions.WithLabelValues("undecodable").Inc()
		return nil
	}

	result, err := h.cmds.ConvertCheckout(msg.Context(), evt)
	if err != nil {
		if isPermanent(err) {
			h.metrics.Conversions.WithLabelValues("failed").Inc()
			return h.cmds.RecordFailure(msg.Context(), evt, err.Error())
		}
		return err
	}

	h.metrics.Conversions.WithLabelValues(string(result.Outcome)).Inc()
	switch result.Outcome {
	case commands.ConversionConverted:
		h.metrics.BookingsCreated.WithLabelValues(string(booking.PaymentMethodCard)).Inc()
	case commands.ConversionShort:
		h.metrics.BookingsCreated.WithLabelValues(string(booking.PaymentMethodCard)).Inc()
		h.metrics.InventoryShortfall.Inc()
	}
	return nil
}

// HandlePoisoned records events whose conversion kept failing.
func (h *PaymentHandler) HandlePoisoned(msg *message.Message) error {
	evt, err := messaging.DecodeCheckoutCompleted(msg)
	if err != nil {
		slog.Error("dropping undecodable poisoned message", "message_uuid", msg.UUID, "error", err.Error())
		return nil
	}

	reason := msg.Metadata.Get(middleware.ReasonForPoisonedKey)
	if reason == "" {
		reason = "retries exhausted"
	}
	h.metrics.Conversions.WithLabelValues("failed").Inc()
	return h.cmds.RecordFailure(msg.Context(), evt, reason)
}

// isPermanent reports errors that redelivery cannot fix.
func isPermanent(err error) bool {
	return errs.Is(err, commands.ErrDomainValidation) || errs.Is(err, commands.ErrBuyerNotFound)
}
