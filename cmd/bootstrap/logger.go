package bootstrap

import (
	"log/slog"

	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewSlogLogger,
	),
)

func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

// NewSlogLogger also installs the logger as the slog default, which use cases
// and message handlers log through.
func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	logger := l.GetSlogLogger()
	slog.SetDefault(logger)
	return logger
}
