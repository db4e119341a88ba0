package components

import (
	"ticket-checkout/internal/infra/gateway"
	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) *gateway.StripeGateway {
			return gateway.NewStripeGateway(cfg.Payment)
		},
		func(g *gateway.StripeGateway) commands.PaymentGateway { return g },
		func(g *gateway.StripeGateway) commands.WebhookVerifier { return g },
		fx.Annotate(
			messaging.NewCheckoutPublisher,
			fx.As(new(commands.CheckoutPublisher)),
		),
	),
)
