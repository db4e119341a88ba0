package bootstrap

import (
	"context"
	"log/slog"

	handlermsg "ticket-checkout/internal/handler/message"
	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/pkg/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		messaging.NewLogger,
		NewPubSub,
		func(ps *messaging.PubSub) message.Publisher { return ps.Publisher },
		func(ps *messaging.PubSub) message.Subscriber { return ps.Subscriber },
		messaging.NewRouter,
	),
	fx.Invoke(startConsumers),
)

func NewPubSub(lc fx.Lifecycle, cfg config.Config, logger watermill.LoggerAdapter) (*messaging.PubSub, error) {
	ps, err := messaging.NewPubSub(context.Background(), cfg.Messaging, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return ps.Close()
		},
	})
	return ps, nil
}

func startConsumers(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg config.Config,
	router *message.Router,
	sub message.Subscriber,
	pub message.Publisher,
	paymentHandler *handlermsg.PaymentHandler,
	wmLogger watermill.LoggerAdapter,
	logger *slog.Logger,
) error {
	if err := paymentHandler.Register(router, sub, pub, cfg.Messaging, wmLogger); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := router.Run(context.Background()); err != nil {
					logger.Error("メッセージルーターが停止しました", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			<-router.Running()
			logger.Info("📨 決済イベントの購読を開始しました", "topic", messaging.TopicCheckoutCompleted)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return router.Close()
		},
	})
	return nil
}
