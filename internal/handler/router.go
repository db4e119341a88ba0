package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/handler/api"
	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	m *metrics.Metrics,
	bookingHandler *api.BookingHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, m, bookingHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	m *metrics.Metrics,
	bookingHandler *api.BookingHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// The gateway signs the raw body, so this route sits outside /api and auth.
	engine.POST("/webhook-checkout", webhookHandler.Receive)

	buyerOnly := authMiddleware.RequireRole(user.RoleUser)
	staffOnly := authMiddleware.RequireRole(user.RoleAdmin, user.RoleManager)
	anyRole := authMiddleware.RequireRole(user.RoleUser, user.RoleAdmin, user.RoleManager)

	apiGroup := engine.Group("/api/v1")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/checkout-session/:cartId", Handler: bookingHandler.CreateCheckoutSession, Mw: []gin.HandlerFunc{buyerOnly}},
				{Method: http.MethodPost, Path: "/:cartId", Handler: bookingHandler.CreateCashBooking, Mw: []gin.HandlerFunc{buyerOnly}},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List, Mw: []gin.HandlerFunc{anyRole}},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get, Mw: []gin.HandlerFunc{anyRole}},
				{Method: http.MethodPut, Path: "/:id/pay", Handler: bookingHandler.MarkPaid, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPut, Path: "/:id/deliver", Handler: bookingHandler.MarkDelivered, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
