package bootstrap

import (
	"ticket-checkout/internal/domain/booking"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewCheckoutSettings,
	),
)

func NewCheckoutSettings(cfg config.Config) (commands.CheckoutSettings, error) {
	pricing, err := booking.NewPricing(cfg.Checkout.TaxPrice, cfg.Checkout.ShippingPrice)
	if err != nil {
		return commands.CheckoutSettings{}, err
	}
	policy, err := booking.NewCashPaymentPolicy(cfg.Checkout.CashPaymentPolicy)
	if err != nil {
		return commands.CheckoutSettings{}, err
	}
	return commands.CheckoutSettings{
		Pricing:       pricing,
		CashPolicy:    policy,
		PublicBaseURL: cfg.Payment.PublicBaseURL,
	}, nil
}
