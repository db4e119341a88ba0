package components

import (
	"ticket-checkout/internal/handler"
	"ticket-checkout/internal/handler/api"
	handlermsg "ticket-checkout/internal/handler/message"
	"ticket-checkout/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewWebhookHandler,
		handlermsg.NewPaymentHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
