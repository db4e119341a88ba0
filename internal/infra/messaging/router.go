package messaging

import (
	"log/slog"
	"time"

	"ticket-checkout/internal/pkg/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

func NewRouter(logger watermill.LoggerAdapter) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 10 * time.Second,
	}, logger)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(middleware.CorrelationID)
	router.AddMiddleware(LoggingMiddleware)
	return router, nil
}

// ReliableHandler wraps a consumer so failures are retried with backoff and,
// once retries run out, forwarded to poisonTopic instead of being dropped.
func ReliableHandler(h *message.Handler, cfg config.MessagingConfig, pub message.Publisher, poisonTopic string, logger watermill.LoggerAdapter) error {
	poison, err := middleware.PoisonQueue(pub, poisonTopic)
	if err != nil {
		return err
	}

	h.AddMiddleware(
		poison,
		RetryMiddleware(cfg, logger),
		middleware.Recoverer,
	)
	return nil
}

func RetryMiddleware(cfg config.MessagingConfig, logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return middleware.Retry{
		MaxRetries:      cfg.MaxRetries,
		InitialInterval: cfg.RetryInterval,
		MaxInterval:     cfg.RetryInterval * 10,
		Multiplier:      2,
		Logger:          logger,
	}.Middleware
}

func LoggingMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		start := time.Now()
		msgs, err := next(msg)

		attrs := []any{
			"message_uuid", msg.UUID,
			"correlation_id", middleware.MessageCorrelationID(msg),
			"handler", message.HandlerNameFromCtx(msg.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			slog.Error("message handling failed", append(attrs, "error", err.Error())...)
			return msgs, err
		}
		slog.Debug("message handled", attrs...)
		return msgs, nil
	}
}
