package messaging

import (
	"context"
	"log/slog"

	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/errs"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const (
	TopicCheckoutCompleted         = "payments.checkout_completed"
	TopicCheckoutCompletedPoisoned = "payments.checkout_completed.poison"
)

// PubSub is the transport the webhook hands checkout events over.
type PubSub struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber

	closers []func() error
}

func NewLogger(logger *slog.Logger) watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logger)
}

// NewPubSub uses Redis Streams when an address is configured and an
// in-process channel otherwise. The channel transport loses messages on
// restart and is meant for local runs and tests.
func NewPubSub(ctx context.Context, cfg config.MessagingConfig, logger watermill.LoggerAdapter) (*PubSub, error) {
	if cfg.RedisAddr == "" {
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          true,
		}, logger)
		return &PubSub{
			Publisher:  ch,
			Subscriber: ch,
			closers:    []func() error{ch.Close},
		}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.Wrap(err, "failed to connect to redis")
	}

	pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		_ = rdb.Close()
		return nil, errs.Wrap(err, "failed to create redis stream publisher")
	}

	sub, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        rdb,
		ConsumerGroup: cfg.ConsumerGroup,
	}, logger)
	if err != nil {
		_ = pub.Close()
		_ = rdb.Close()
		return nil, errs.Wrap(err, "failed to create redis stream subscriber")
	}

	return &PubSub{
		Publisher:  pub,
		Subscriber: sub,
		closers:    []func() error{sub.Close, pub.Close, rdb.Close},
	}, nil
}

func (p *PubSub) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
